package mock

import "github.com/fwojciec/autoextract"

var _ autoextract.ListExtractor = (*ListExtractor)(nil)

// ListExtractor is a mock implementation of autoextract.ListExtractor.
type ListExtractor struct {
	ExtractListFn func(html string) ([]autoextract.Item, error)
}

func (e *ListExtractor) ExtractList(html string) ([]autoextract.Item, error) {
	return e.ExtractListFn(html)
}
