// Package list implements automatic extraction of repeated title/link
// records from index-style HTML pages.
//
// Detection works purely on document structure. Every descendant of
// <body> is scored as a potential list row: it needs enough siblings,
// link text of plausible title length, and a shape similar to its
// peers. Surviving candidates are grouped by their parent's selector,
// nested groupings are pruned to the deepest level, and near-identical
// groups are merged into clusters. The cluster whose members look most
// alike wins, and within it the anchor tag path whose text lengths best
// fit a title-length model supplies the emitted items.
package list

import (
	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/goquery"
	"github.com/fwojciec/autoextract/html"
	"github.com/fwojciec/autoextract/levenshtein"
)

var _ autoextract.ListExtractor = (*Extractor)(nil)

// Extractor implements autoextract.ListExtractor. It is stateless
// across calls and safe for concurrent use.
type Extractor struct {
	minNumber           int
	minLength           int
	maxLength           int
	avgLength           float64
	similarityThreshold float64
	sim                 autoextract.Similarity
	cleaner             autoextract.Cleaner
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinNumber sets the smallest sibling-group size treated as a list.
func WithMinNumber(n int) Option {
	return func(e *Extractor) { e.minNumber = n }
}

// WithMinLength sets the lower bound on expected link text length in
// runes.
func WithMinLength(n int) Option {
	return func(e *Extractor) { e.minLength = n }
}

// WithMaxLength sets the upper bound on expected link text length in
// runes.
func WithMaxLength(n int) Option {
	return func(e *Extractor) { e.maxLength = n }
}

// WithSimilarityThreshold sets the minimum mean shape similarity a
// candidate must share with its siblings.
func WithSimilarityThreshold(t float64) Option {
	return func(e *Extractor) { e.similarityThreshold = t }
}

// WithSimilarity replaces the string similarity scorer.
func WithSimilarity(sim autoextract.Similarity) Option {
	return func(e *Extractor) { e.sim = sim }
}

// WithCleaner replaces the preprocessing cleaner.
func WithCleaner(c autoextract.Cleaner) Option {
	return func(e *Extractor) { e.cleaner = c }
}

// New returns an Extractor with default thresholds, edit-distance
// similarity, and goquery preprocessing.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minNumber:           autoextract.DefaultMinNumber,
		minLength:           autoextract.DefaultMinLength,
		maxLength:           autoextract.DefaultMaxLength,
		similarityThreshold: autoextract.DefaultSimilarityThreshold,
		sim:                 levenshtein.New(),
		cleaner:             goquery.NewCleaner(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.avgLength = float64(e.minLength+e.maxLength) / 2
	return e
}

// ExtractList extracts the dominant repeated title/link structure from
// markup. Empty input returns (nil, nil); a page without a qualifying
// repeated structure returns ENOCANDIDATES; a winning structure without
// links returns ENOLINKEDTITLE.
func (e *Extractor) ExtractList(markup string) ([]autoextract.Item, error) {
	if markup == "" {
		return nil, nil
	}

	cleaned, err := e.cleaner.Clean(markup)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(cleaned)
	if err != nil {
		return nil, autoextract.Errorf(autoextract.EINVALID, "failed to parse HTML: %v", err)
	}

	clusters := e.BuildClusters(doc)
	best, err := e.BestCluster(clusters)
	if err != nil {
		return nil, err
	}
	return e.ExtractFromCluster(best)
}
