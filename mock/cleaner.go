package mock

import "github.com/fwojciec/autoextract"

var _ autoextract.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of autoextract.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}
