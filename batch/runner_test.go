package batch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/batch"
	"github.com/fwojciec/autoextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns nothing for no sources", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.ListExtractor{},
		}

		results, err := r.Run(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("results follow source order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		sources := []string{
			"https://a.example/",
			"https://b.example/",
			"https://c.example/",
		}
		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					// Stagger completion so later sources finish first.
					switch url {
					case "https://a.example/":
						time.Sleep(30 * time.Millisecond)
					case "https://b.example/":
						time.Sleep(15 * time.Millisecond)
					}
					return url, nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(html string) ([]autoextract.Item, error) {
					return []autoextract.Item{{Title: "From " + html, Href: html + "post"}}, nil
				},
			},
			Concurrency: 3,
			RetryDelays: []time.Duration{},
		}

		results, err := r.Run(context.Background(), sources, nil)

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, source := range sources {
			assert.Equal(t, i, results[i].Position)
			assert.Equal(t, source, results[i].Source)
			require.NoError(t, results[i].Err)
			require.Len(t, results[i].Items, 1)
			assert.Equal(t, "From "+source, results[i].Items[0].Title)
		}
	})

	t.Run("reports failures per source", func(t *testing.T) {
		t.Parallel()

		fetchErr := autoextract.Errorf(autoextract.EINTERNAL, "connection refused")
		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://down.example/" {
						return "", fetchErr
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return []autoextract.Item{{Title: "StillWorking", Href: "https://up.example/1"}}, nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		results, err := r.Run(context.Background(), []string{"https://down.example/", "https://up.example/"}, nil)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, fetchErr, results[0].Err)
		assert.Empty(t, results[0].Items)
		require.NoError(t, results[1].Err)
		assert.Len(t, results[1].Items, 1)
	})

	t.Run("resolves relative links against the source URL", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return []autoextract.Item{
						{Title: "RelativeStory", Href: "/post/1"},
						{Title: "AbsoluteStory", Href: "https://other.example/post/2"},
					}, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		results, err := r.Run(context.Background(), []string{"https://news.example/index.html"}, nil)

		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, results[0].Items, 2)
		assert.Equal(t, "https://news.example/post/1", results[0].Items[0].Href)
		assert.Equal(t, "https://other.example/post/2", results[0].Items[1].Href)
	})

	t.Run("keeps local source links untouched", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return []autoextract.Item{{Title: "LocalStory", Href: "/post/1"}}, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		results, err := r.Run(context.Background(), []string{"page.html"}, nil)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "/post/1", results[0].Items[0].Href)
	})

	t.Run("drops items repeated across sources", func(t *testing.T) {
		t.Parallel()

		shared := autoextract.Item{Title: "SyndicatedStory", Href: "https://wire.example/post/1"}
		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(html string) ([]autoextract.Item, error) {
					if html == "https://a.example/" {
						return []autoextract.Item{
							{Title: "FirstExclusive", Href: "https://a.example/post/1"},
							shared,
						}, nil
					}
					return []autoextract.Item{
						shared,
						{Title: "SecondExclusive", Href: "https://b.example/post/1"},
					}, nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		results, err := r.Run(context.Background(), []string{"https://a.example/", "https://b.example/"}, nil)

		require.NoError(t, err)
		require.Len(t, results, 2)
		// First occurrence wins; the second source loses the duplicate.
		require.Len(t, results[0].Items, 2)
		assert.Equal(t, shared, results[0].Items[1])
		require.Len(t, results[1].Items, 1)
		assert.Equal(t, "SecondExclusive", results[1].Items[0].Title)
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					if attempts.Add(1) < 3 {
						return "", autoextract.Errorf(autoextract.EINTERNAL, "flaky")
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return []autoextract.Item{{Title: "EventualStory", Href: "/post/1"}}, nil
				},
			},
			RetryDelays: []time.Duration{0, 0, 0},
		}

		results, err := r.Run(context.Background(), []string{"https://flaky.example/"}, nil)

		require.NoError(t, err)
		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("waits on the rate limiter per domain", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return nil, autoextract.Errorf(autoextract.ENOCANDIDATES, "no repeated structure found")
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					domains = append(domains, domain)
					mu.Unlock()
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		sources := []string{"https://a.example/", "https://b.example/x", "page.html"}
		_, err := r.Run(context.Background(), sources, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.example", "b.example"}, domains)
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://down.example/" {
						return "", autoextract.Errorf(autoextract.EINTERNAL, "connection refused")
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ListExtractor{
				ExtractListFn: func(_ string) ([]autoextract.Item, error) {
					return []autoextract.Item{{Title: "ProgressStory", Href: "/post/1"}}, nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		var events []batch.ProgressEvent
		_, err := r.Run(context.Background(), []string{"https://up.example/", "https://down.example/"}, func(e batch.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, batch.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Items)
		assert.Equal(t, batch.ProgressFailed, events[2].Type)
		assert.Equal(t, "https://down.example/", events[2].Source)
		assert.Error(t, events[2].Error)
		assert.Equal(t, batch.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns the last error when all attempts fail", func(t *testing.T) {
		t.Parallel()

		var attempts int
		_, err := batch.FetchWithRetry(context.Background(), "https://x.example/",
			func(_ context.Context, _ string) (string, error) {
				attempts++
				return "", autoextract.Errorf(autoextract.EINTERNAL, "attempt %d failed", attempts)
			},
			[]time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Contains(t, err.Error(), "attempt 3 failed")
	})

	t.Run("stops without retrying on success", func(t *testing.T) {
		t.Parallel()

		var attempts int
		html, err := batch.FetchWithRetry(context.Background(), "https://x.example/",
			func(_ context.Context, _ string) (string, error) {
				attempts++
				return "<html></html>", nil
			},
			[]time.Duration{time.Hour})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("respects context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := batch.FetchWithRetry(ctx, "https://x.example/",
			func(_ context.Context, _ string) (string, error) {
				cancel()
				return "", autoextract.Errorf(autoextract.EINTERNAL, "boom")
			},
			[]time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}
