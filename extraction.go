package autoextract

import (
	"context"
	"time"
)

// Extraction represents one saved extraction run: the items pulled from a
// single page together with where and when they were obtained.
type Extraction struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"sourceUrl"`
	Title     string    `json:"title"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`

	// Items is populated by FindExtractionByID; list queries leave it nil.
	Items []Item `json:"items,omitempty"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if len(e.Items) == 0 {
		return Errorf(EINVALID, "extraction requires at least one item")
	}
	for i := range e.Items {
		if err := e.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ExtractionService represents a service for managing saved extractions.
type ExtractionService interface {
	// CreateExtraction persists a new extraction run and its items.
	CreateExtraction(ctx context.Context, extraction *Extraction) error

	// FindExtractionByID retrieves an extraction with its items.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter,
	// newest first. Items are not populated.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction permanently removes an extraction and its items.
	// Returns ENOTFOUND if the extraction does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
