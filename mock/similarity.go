package mock

import "github.com/fwojciec/autoextract"

var _ autoextract.Similarity = (*Similarity)(nil)

// Similarity is a mock implementation of autoextract.Similarity.
type Similarity struct {
	CompareFn func(a, b string) float64
}

func (s *Similarity) Compare(a, b string) float64 {
	return s.CompareFn(a, b)
}
