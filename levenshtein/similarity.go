// Package levenshtein scores string similarity by normalized edit
// distance.
package levenshtein

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/autoextract"
)

var _ autoextract.Similarity = (*Similarity)(nil)

// Similarity implements autoextract.Similarity on rune-level edit
// distance: 1 - distance/maxRuneLength.
type Similarity struct{}

// New returns a new Similarity.
func New() *Similarity {
	return &Similarity{}
}

// Compare returns a similarity score in [0, 1]. Identical strings score
// 1; if either string is empty the score is 0, even when both are.
func (s *Similarity) Compare(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
