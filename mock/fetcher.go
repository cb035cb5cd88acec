package mock

import (
	"context"

	"github.com/fwojciec/autoextract"
)

var _ autoextract.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of autoextract.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ autoextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of autoextract.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
