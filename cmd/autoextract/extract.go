package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/batch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if len(c.Sources) == 0 {
		return autoextract.Errorf(autoextract.EINVALID, "at least one source required")
	}

	progress := func(event batch.ProgressEvent) {
		if event.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Source, event.Error)
		}
	}

	results, err := deps.Runner.Run(deps.Ctx, c.Sources, progress)
	if err != nil {
		return err
	}

	// A run is an error only when every source failed; partial failures
	// were already reported above.
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return results[0].Err
	}

	if c.Base != "" {
		for i := range results {
			if results[i].Err != nil {
				continue
			}
			resolved, err := autoextract.ResolveItems(c.Base, results[i].Items)
			if err != nil {
				return err
			}
			results[i].Items = resolved
		}
	}

	items := []autoextract.Item{}
	for _, result := range results {
		if result.Err == nil {
			items = append(items, result.Items...)
		}
	}

	if c.Save {
		if deps.Extractions == nil {
			return autoextract.Errorf(autoextract.EINVALID, "saving requires a database")
		}
		for _, result := range results {
			if result.Err != nil || len(result.Items) == 0 {
				continue
			}
			extraction := &autoextract.Extraction{
				SourceURL: result.Source,
				Title:     c.Title,
				Items:     result.Items,
			}
			if err := deps.Extractions.CreateExtraction(deps.Ctx, extraction); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", autoextract.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stderr, "Saved run %s (%d items)\n", extraction.ID, len(result.Items))
		}
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "rss":
		feed := &autoextract.Feed{
			Title: c.Title,
			Items: items,
		}
		if len(c.Sources) == 1 && isURL(c.Sources[0]) {
			feed.Link = c.Sources[0]
		}
		return deps.FeedWriter.WriteFeed(deps.Stdout, feed)
	default:
		for _, item := range items {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", item.Title, item.Href)
		}
		return nil
	}
}

// applyTo overrides config thresholds with explicitly set flags.
func (c *ExtractCmd) applyTo(cfg *autoextract.ExtractorConfig) {
	if c.MinNumber > 0 {
		cfg.MinNumber = c.MinNumber
	}
	if c.MinLength >= 0 {
		cfg.MinLength = c.MinLength
	}
	if c.MaxLength > 0 {
		cfg.MaxLength = c.MaxLength
	}
	if c.Threshold >= 0 {
		cfg.SimilarityThreshold = c.Threshold
	}
}

// SourceFetcher adapts mixed command-line sources to the Fetcher
// interface: http(s) URLs are fetched over the network, "-" reads
// stdin, and anything else is treated as a local file path.
type SourceFetcher struct {
	HTTP  autoextract.Fetcher
	Stdin io.Reader
}

// Fetch returns the markup behind a single source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(f.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case isURL(source):
		return f.HTTP.Fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
