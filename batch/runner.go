// Package batch runs list extraction over many sources concurrently.
// It coordinates rate-limited fetching, extraction, link resolution,
// and cross-source deduplication of the extracted items.
package batch

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/bloom"
	"golang.org/x/sync/errgroup"
)

// Dedup filter sizing. A false positive drops a genuine item, so the
// rate is kept well below the frontier-style defaults.
const (
	dedupeExpectedItems     = 10000
	dedupeFalsePositiveRate = 0.001
)

// Runner extracts lists from multiple sources concurrently.
type Runner struct {
	Fetcher     autoextract.Fetcher
	Extractor   autoextract.ListExtractor
	Limiter     autoextract.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// SourceResult holds the outcome for a single source. Position matches
// the source's index in the input slice.
type SourceResult struct {
	Position int
	Source   string
	Items    []autoextract.Item
	Err      error
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Items     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run extracts lists from all sources and returns one result per
// source, in input order. Failures are reported per source rather than
// aborting the run. Items already emitted by an earlier source are
// dropped, so merging the results yields each item once.
//
// The progress callback, if provided, receives events as sources
// complete; completion order depends on scheduling, but the returned
// results do not.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) ([]SourceResult, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan SourceResult, len(sources))

	var completed atomic.Int64
	total := len(sources)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			g.Go(func() error {
				resultCh <- r.processSource(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]SourceResult, len(sources))
	for result := range resultCh {
		completed.Add(1)
		results[result.Position] = result

		if progress == nil {
			continue
		}
		if result.Err != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				Source:    result.Source,
				Error:     result.Err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Source:    result.Source,
				Items:     len(result.Items),
			})
		}
	}

	dedupe(results)

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return results, ctx.Err()
}

// processSource fetches and extracts a single source.
func (r *Runner) processSource(ctx context.Context, position int, source string) SourceResult {
	result := SourceResult{
		Position: position,
		Source:   source,
	}

	if r.Limiter != nil {
		if host := sourceHost(source); host != "" {
			if err := r.Limiter.Wait(ctx, host); err != nil {
				result.Err = err
				return result
			}
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, source, r.Fetcher.Fetch, delays)
	if err != nil {
		result.Err = err
		return result
	}

	items, err := r.Extractor.ExtractList(html)
	if err != nil {
		result.Err = err
		return result
	}

	// Relative links from URL sources are resolved so items from
	// different sites cannot collide during deduplication.
	if u, err := url.Parse(source); err == nil && u.IsAbs() {
		if resolved, err := autoextract.ResolveItems(source, items); err == nil {
			items = resolved
		}
	}

	result.Items = items
	return result
}

// dedupe drops items already emitted by an earlier source. Sources are
// walked in input order, so the first occurrence always wins regardless
// of completion order.
func dedupe(results []SourceResult) {
	filter := bloom.NewItemFilter(dedupeExpectedItems, dedupeFalsePositiveRate)
	for i := range results {
		if results[i].Err != nil || len(results[i].Items) == 0 {
			continue
		}
		kept := results[i].Items[:0]
		for _, item := range results[i].Items {
			if filter.AddIfNew(item) {
				kept = append(kept, item)
			}
		}
		results[i].Items = kept
	}
}

// sourceHost returns the host of a URL source, or "" for local sources.
func sourceHost(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Host
}
