package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/autoextract"
	main "github.com/fwojciec/autoextract/cmd/autoextract"
	"github.com/fwojciec/autoextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists saved runs newest first", func(t *testing.T) {
		t.Parallel()

		created := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
		store := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, _ autoextract.ExtractionFilter) ([]*autoextract.Extraction, error) {
				return []*autoextract.Extraction{
					{ID: "run-new", SourceURL: "https://news.example/", ItemCount: 12, CreatedAt: created},
					{ID: "run-old", SourceURL: "https://blog.example/", ItemCount: 3, CreatedAt: created.Add(-time.Hour)},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: store,
		}

		cmd := &main.RunsListCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "run-new  2026-08-20T12:30:00Z  12 items  https://news.example/")
		assert.Contains(t, stdout.String(), "run-old")
	})

	t.Run("passes filter flags through", func(t *testing.T) {
		t.Parallel()

		var gotFilter autoextract.ExtractionFilter
		store := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, filter autoextract.ExtractionFilter) ([]*autoextract.Extraction, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      &bytes.Buffer{},
			Stderr:      &bytes.Buffer{},
			Extractions: store,
		}

		cmd := &main.RunsListCmd{Source: "https://news.example/", Limit: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.SourceURL)
		assert.Equal(t, "https://news.example/", *gotFilter.SourceURL)
		assert.Equal(t, 5, gotFilter.Limit)
	})

	t.Run("prints a hint when no runs exist", func(t *testing.T) {
		t.Parallel()

		store := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, _ autoextract.ExtractionFilter) ([]*autoextract.Extraction, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: store,
		}

		cmd := &main.RunsListCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No saved runs")
	})
}

func TestRunsShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints run items", func(t *testing.T) {
		t.Parallel()

		store := &mock.ExtractionService{
			FindExtractionByIDFn: func(_ context.Context, id string) (*autoextract.Extraction, error) {
				return &autoextract.Extraction{
					ID:        id,
					SourceURL: "https://news.example/",
					ItemCount: 2,
					Items: []autoextract.Item{
						{Title: "FirstHeadline", Href: "https://news.example/post/1"},
						{Title: "SecondHeadline", Href: "https://news.example/post/2"},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: store,
		}

		cmd := &main.RunsShowCmd{ID: "run-1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Items from https://news.example/ (2 total)")
		assert.Contains(t, stdout.String(), "1. FirstHeadline")
		assert.Contains(t, stdout.String(), "https://news.example/post/2")
	})

	t.Run("reports missing runs", func(t *testing.T) {
		t.Parallel()

		store := &mock.ExtractionService{
			FindExtractionByIDFn: func(_ context.Context, _ string) (*autoextract.Extraction, error) {
				return nil, autoextract.Errorf(autoextract.ENOTFOUND, "extraction not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      &bytes.Buffer{},
			Stderr:      stderr,
			Extractions: store,
		}

		cmd := &main.RunsShowCmd{ID: "run-missing"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, autoextract.ENOTFOUND, autoextract.ErrorCode(err))
		assert.Contains(t, stderr.String(), "extraction not found")
	})
}

func TestRunsDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes run when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		store := &mock.ExtractionService{
			DeleteExtractionFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: store,
		}

		cmd := &main.RunsDeleteCmd{ID: "run-1", Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      &bytes.Buffer{},
			Stderr:      stderr,
			Extractions: &mock.ExtractionService{},
		}

		cmd := &main.RunsDeleteCmd{ID: "run-1", Force: false}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})
}
