package html

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/autoextract"
)

// punctuation is the rune set counted by NumberOfPunctuation. It mixes
// fullwidth and ASCII forms because list pages do.
const punctuation = "！，。？、；：“”‘’《》%（）<>{}「」【】*～`,.?:;'\"!%()"

// removeWhitespace strips every whitespace rune, not just leading and
// trailing runs. Text comparisons treat "a b" and "ab" as equal.
func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Text returns the element's text content, concatenated across all
// descendant text nodes, with every whitespace rune removed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	if e.have&featText == 0 {
		e.text = removeWhitespace(htmlquery.InnerText(e.node))
		e.have |= featText
	}
	return e.text
}

// TextLength returns the rune length of Text.
func (e *Element) TextLength() int {
	if e == nil {
		return 0
	}
	if e.have&featTextLen == 0 {
		e.textLen = utf8.RuneCountInString(e.Text())
		e.have |= featTextLen
	}
	return e.textLen
}

// NumberOfPunctuation returns how many punctuation runes Text contains.
func (e *Element) NumberOfPunctuation() int {
	if e == nil {
		return 0
	}
	if e.have&featPunctCount == 0 {
		n := 0
		for _, r := range e.Text() {
			if strings.ContainsRune(punctuation, r) {
				n++
			}
		}
		e.punctCount = n
		e.have |= featPunctCount
	}
	return e.punctCount
}

// LinkedDescendants returns the anchor elements below this element in
// document order. The element itself is never included, so anchors have
// no linked descendants of their own.
func (e *Element) LinkedDescendants() []*Element {
	if e == nil {
		return nil
	}
	if e.have&featLinked == 0 {
		for _, n := range htmlquery.Find(e.node, ".//a") {
			e.linked = append(e.linked, e.doc.element(n))
		}
		e.have |= featLinked
	}
	return e.linked
}

// NumberOfLinkedDescendants returns how many anchors sit below this
// element.
func (e *Element) NumberOfLinkedDescendants() int {
	if e == nil {
		return 0
	}
	return len(e.LinkedDescendants())
}

// LinkedTextLength returns the total rune length of text inside the
// element's anchors.
func (e *Element) LinkedTextLength() int {
	if e == nil {
		return 0
	}
	if e.have&featLinkedTextLen == 0 {
		total := 0
		for _, a := range e.LinkedDescendants() {
			total += a.TextLength()
		}
		e.linkedTextLen = total
		e.have |= featLinkedTextLen
	}
	return e.linkedTextLen
}

// DensityOfText relates the amount of unlinked text to the number of
// unlinked elements. Returns 0 when every descendant is an anchor.
func (e *Element) DensityOfText() float64 {
	if e == nil {
		return 0
	}
	den := float64(e.NumberOfDescendants() - e.NumberOfLinkedDescendants())
	if den == 0 {
		return 0
	}
	return float64(e.TextLength()-e.LinkedTextLength()) / den
}

// DensityOfPunctuation relates unlinked text length to punctuation
// count. Returns 1 rather than 0 so callers can divide by it.
func (e *Element) DensityOfPunctuation() float64 {
	if e == nil {
		return 1
	}
	d := float64(e.TextLength()-e.LinkedTextLength()) / float64(e.NumberOfPunctuation()+1)
	if d == 0 {
		return 1
	}
	return d
}

// LinkedGroupMinTextLength returns the smallest per-group mean rune
// length among the element's anchors, where anchors sharing a tag path
// form one group. Returns 0 when the element has no anchors.
func (e *Element) LinkedGroupMinTextLength() float64 {
	if e == nil {
		return 0
	}
	e.computeLinkedGroups()
	return e.linkedMin
}

// LinkedGroupMaxTextLength returns the largest per-group mean rune
// length among the element's anchors. Returns 0 when the element has no
// anchors.
func (e *Element) LinkedGroupMaxTextLength() float64 {
	if e == nil {
		return 0
	}
	e.computeLinkedGroups()
	return e.linkedMax
}

func (e *Element) computeLinkedGroups() {
	if e.have&featLinkedGroups != 0 {
		return
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range e.LinkedDescendants() {
		p := a.TagPath()
		sums[p] += float64(a.TextLength())
		counts[p]++
	}
	first := true
	for p, sum := range sums {
		mean := sum / float64(counts[p])
		if first || mean < e.linkedMin {
			e.linkedMin = mean
		}
		if first || mean > e.linkedMax {
			e.linkedMax = mean
		}
		first = false
	}
	e.have |= featLinkedGroups
}

// ShapeAlias returns the element's shape fingerprint: the tag name
// followed by each attribute as [name="value"] (or [name] for empty
// values) in source order, with whitespace stripped from names and
// values.
func (e *Element) ShapeAlias() string {
	if e == nil {
		return ""
	}
	if e.have&featShapeAlias == 0 {
		var b strings.Builder
		b.WriteString(e.Tag())
		for _, a := range e.Attrs() {
			name := removeWhitespace(a.Name)
			value := removeWhitespace(a.Value)
			if value == "" {
				b.WriteString("[" + name + "]")
			} else {
				b.WriteString("[" + name + `="` + value + `"]`)
			}
		}
		e.shapeAlias = b.String()
		e.have |= featShapeAlias
	}
	return e.shapeAlias
}

// Alias returns the shape alias with a ::nth-child(n) suffix appended
// when the element is not its parent's first element child.
func (e *Element) Alias() string {
	if e == nil {
		return ""
	}
	if e.have&featAlias == 0 {
		e.alias = e.ShapeAlias()
		if n := e.NthChild(); n != 1 {
			e.alias += fmt.Sprintf("::nth-child(%d)", n)
		}
		e.have |= featAlias
	}
	return e.alias
}

// Selector returns the '>'-joined chain of aliases from the root
// element down to this element. Selectors of distinct elements are
// distinct, and an ancestor's selector is a prefix of its descendants'.
func (e *Element) Selector() string {
	if e == nil {
		return ""
	}
	if e.have&featSelector == 0 {
		if p := e.Parent(); p != nil {
			e.selector = p.Selector() + ">" + e.Alias()
		} else {
			e.selector = e.Alias()
		}
		e.have |= featSelector
	}
	return e.selector
}

// ParentSelector returns the selector of the element's parent, or ""
// at the top of the tree.
func (e *Element) ParentSelector() string {
	if e == nil {
		return ""
	}
	return e.Parent().Selector()
}

// TagPath returns the '/'-joined chain of bare tag names from the root
// element down to this element. Unlike Selector it ignores attributes
// and position, so parallel rows of a list share a tag path.
func (e *Element) TagPath() string {
	if e == nil {
		return ""
	}
	if e.have&featTagPath == 0 {
		if p := e.Parent(); p != nil {
			e.tagPath = p.TagPath() + "/" + e.Tag()
		} else {
			e.tagPath = e.Tag()
		}
		e.have |= featTagPath
	}
	return e.tagPath
}

// Path returns the tag path with a :nth-child(n) suffix on the final
// segment when the element is not its parent's first element child.
func (e *Element) Path() string {
	if e == nil {
		return ""
	}
	if e.have&featPath == 0 {
		e.path = e.TagPath()
		if n := e.NthChild(); n != 1 {
			e.path += fmt.Sprintf(":nth-child(%d)", n)
		}
		e.have |= featPath
	}
	return e.path
}

// SimilarityWith scores the structural likeness of two elements by
// comparing their shape aliases. Sibling position is deliberately
// ignored: the first element of a run scores 1.0 against identically
// shaped peers even though their full aliases differ.
func (e *Element) SimilarityWith(other *Element, sim autoextract.Similarity) float64 {
	if e == nil || other == nil || sim == nil {
		return 0
	}
	return sim.Compare(e.ShapeAlias(), other.ShapeAlias())
}

// SimilarityWithSiblings returns the mean similarity between the
// element and each of its siblings, or 0 for an element without
// siblings. The result is cached after the first call, so use a single
// scorer per document.
func (e *Element) SimilarityWithSiblings(sim autoextract.Similarity) float64 {
	if e == nil {
		return 0
	}
	if e.have&featSimSiblings == 0 {
		if siblings := e.Siblings(); len(siblings) > 0 {
			var total float64
			for _, s := range siblings {
				total += e.SimilarityWith(s, sim)
			}
			e.simSiblings = total / float64(len(siblings))
		}
		e.have |= featSimSiblings
	}
	return e.simSiblings
}
