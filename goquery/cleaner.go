// Package goquery implements HTML preprocessing with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/autoextract"
	"golang.org/x/net/html"
)

var _ autoextract.Cleaner = (*Cleaner)(nil)

// removedTags are elements removed together with their content: they
// carry no list text, or would distort text statistics if kept.
var removedTags = []string{
	"script", "style", "link", "meta", "noscript",
	"video", "audio", "iframe", "source", "svg", "path", "symbol", "img",
	"footer", "header",
}

// unwrappedTags are presentational wrappers dissolved in place: the
// wrapper is removed and its children take its position, so "<li><span>
// x</span></li>" and "<li>x</li>" produce the same element shape.
var unwrappedTags = []string{"span", "blockquote"}

// noiseSelector matches blocks that repeat page-wide without being list
// content (comment and ad containers) and inline-hidden nodes.
const noiseSelector = `div[class*="comment"], div[class*="advert"], [style*="display:none"], [style*="display: none"]`

// Cleaner strips noise markup before list detection.
type Cleaner struct{}

// NewCleaner returns a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean parses markup, removes noise elements, dissolves presentational
// wrappers, and renders the result back to a string. Returns EINVALID
// for empty input.
func (c *Cleaner) Clean(markup string) (string, error) {
	if markup == "" {
		return "", autoextract.Errorf(autoextract.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", autoextract.Errorf(autoextract.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(strings.Join(removedTags, ", ")).Remove()

	for _, tag := range unwrappedTags {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			for _, n := range sel.Nodes {
				unwrap(n)
			}
		})
	}

	doc.Find(noiseSelector).Remove()

	out, err := doc.Html()
	if err != nil {
		return "", autoextract.Errorf(autoextract.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}

// unwrap splices n's children into its parent in n's place.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}
