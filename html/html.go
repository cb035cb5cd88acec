// Package html wraps an x/net/html parse tree in elements that carry
// the structural features used for list detection: tag paths, CSS-like
// selectors, text statistics, and sibling similarity. Features are
// computed lazily and cached per element, so repeated passes over the
// same document stay cheap.
package html

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page. It owns the canonical Element wrapper
// for every node, so feature caches survive across traversals.
type Document struct {
	root  *html.Node
	elems map[*html.Node]*Element
}

// Parse parses markup into a Document. The parser is lenient: malformed
// markup yields a best-effort tree rather than an error.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Document{root: root, elems: make(map[*html.Node]*Element)}, nil
}

// element returns the canonical wrapper for node, creating it on first
// use. Returning the same *Element for the same node is what makes the
// per-element feature caches effective.
func (d *Document) element(node *html.Node) *Element {
	if node == nil {
		return nil
	}
	if e, ok := d.elems[node]; ok {
		return e
	}
	e := &Element{node: node, doc: d}
	d.elems[node] = e
	return e
}

// Root returns the document's root element, typically <html>.
func (d *Document) Root() *Element {
	if d == nil {
		return nil
	}
	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return d.element(n)
		}
	}
	return nil
}

// Body returns the document's <body> element, or nil if there is none.
func (d *Document) Body() *Element {
	if d == nil {
		return nil
	}
	return d.element(htmlquery.FindOne(d.root, "//body"))
}

// BodyDescendants returns the body element followed by all of its
// element descendants in document order, or nil if the document has no
// body. This is the candidate pool for list detection.
func (d *Document) BodyDescendants() []*Element {
	body := d.Body()
	if body == nil {
		return nil
	}
	return append([]*Element{body}, body.Descendants()...)
}

// Find returns the elements matching an XPath expression, evaluated
// from the document root.
func (d *Document) Find(expr string) ([]*Element, error) {
	if d == nil {
		return nil, nil
	}
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, d.element(n))
		}
	}
	return out, nil
}
