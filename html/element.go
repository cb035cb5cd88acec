package html

import (
	"golang.org/x/net/html"
)

// Element wraps a single element node of a Document. All methods are
// nil-safe and return zero values on a nil receiver, so navigation
// chains need no intermediate checks.
type Element struct {
	node *html.Node
	doc  *Document

	have feature

	text          string
	alias         string
	shapeAlias    string
	selector      string
	tagPath       string
	path          string
	nth           int
	textLen       int
	siblingCount  int
	childCount    int
	descCount     int
	punctCount    int
	linkedTextLen int
	linked        []*Element
	linkedMin     float64
	linkedMax     float64
	simSiblings   float64
}

// feature marks which cached fields of an Element have been computed.
type feature uint32

const (
	featText feature = 1 << iota
	featAlias
	featShapeAlias
	featSelector
	featTagPath
	featPath
	featNth
	featTextLen
	featSiblingCount
	featChildCount
	featDescCount
	featPunctCount
	featLinkedTextLen
	featLinked
	featLinkedGroups
	featSimSiblings
)

// Attribute is a single name/value attribute pair.
type Attribute struct {
	Name  string
	Value string
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	if e == nil {
		return ""
	}
	return e.node.Data
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Attrs returns the element's attributes in source order.
func (e *Element) Attrs() []Attribute {
	if e == nil || len(e.node.Attr) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		out = append(out, Attribute{Name: a.Key, Value: a.Val})
	}
	return out
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.element(p)
}

// Children returns the element's child elements in document order.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.element(c))
		}
	}
	return out
}

// Siblings returns the element's sibling elements in document order,
// excluding the element itself.
func (e *Element) Siblings() []*Element {
	if e == nil || e.node.Parent == nil {
		return nil
	}
	var out []*Element
	for c := e.node.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c != e.node {
			out = append(out, e.doc.element(c))
		}
	}
	return out
}

// Descendants returns all element descendants in document order,
// excluding the element itself.
func (e *Element) Descendants() []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, e.doc.element(c))
				walk(c)
			}
		}
	}
	walk(e.node)
	return out
}

// NthChild returns the element's 1-based position among its element
// siblings. The first element child of a parent is 1.
func (e *Element) NthChild() int {
	if e == nil {
		return 0
	}
	if e.have&featNth == 0 {
		n := 1
		for c := e.node.PrevSibling; c != nil; c = c.PrevSibling {
			if c.Type == html.ElementNode {
				n++
			}
		}
		e.nth = n
		e.have |= featNth
	}
	return e.nth
}

// NumberOfChildren returns how many element children the element has.
func (e *Element) NumberOfChildren() int {
	if e == nil {
		return 0
	}
	if e.have&featChildCount == 0 {
		e.childCount = len(e.Children())
		e.have |= featChildCount
	}
	return e.childCount
}

// NumberOfSiblings returns how many element siblings the element has.
func (e *Element) NumberOfSiblings() int {
	if e == nil {
		return 0
	}
	if e.have&featSiblingCount == 0 {
		e.siblingCount = len(e.Siblings())
		e.have |= featSiblingCount
	}
	return e.siblingCount
}

// NumberOfDescendants returns how many element descendants the element
// has.
func (e *Element) NumberOfDescendants() int {
	if e == nil {
		return 0
	}
	if e.have&featDescCount == 0 {
		e.descCount = len(e.Descendants())
		e.have |= featDescCount
	}
	return e.descCount
}
