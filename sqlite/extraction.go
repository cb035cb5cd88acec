package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/autoextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ autoextract.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements autoextract.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// CreateExtraction persists a new extraction run and its items atomically.
func (s *ExtractionService) CreateExtraction(ctx context.Context, extraction *autoextract.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	extraction.ID = uuid.New().String()
	extraction.CreatedAt = time.Now().UTC()
	extraction.ItemCount = len(extraction.Items)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO extractions (id, source_url, title, item_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, extraction.ID, extraction.SourceURL, extraction.Title, extraction.ItemCount,
		extraction.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, item := range extraction.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO extraction_items (extraction_id, position, title, href)
			VALUES (?, ?, ?, ?)
		`, extraction.ID, i, item.Title, item.Href)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindExtractionByID retrieves an extraction by ID with its items in
// extraction order.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*autoextract.Extraction, error) {
	var extraction autoextract.Extraction
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, item_count, created_at
		FROM extractions
		WHERE id = ?
	`, id).Scan(&extraction.ID, &extraction.SourceURL, &extraction.Title,
		&extraction.ItemCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, autoextract.Errorf(autoextract.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	extraction.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, href
		FROM extraction_items
		WHERE extraction_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item autoextract.Item
		if err := rows.Scan(&item.Title, &item.Href); err != nil {
			return nil, err
		}
		extraction.Items = append(extraction.Items, item)
	}

	return &extraction, rows.Err()
}

// FindExtractions retrieves extractions matching the filter, newest
// first. Items are not populated.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter autoextract.ExtractionFilter) ([]*autoextract.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, item_count, created_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*autoextract.Extraction
	for rows.Next() {
		var extraction autoextract.Extraction
		var createdAt string

		if err := rows.Scan(&extraction.ID, &extraction.SourceURL, &extraction.Title,
			&extraction.ItemCount, &createdAt); err != nil {
			return nil, err
		}

		extraction.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		extractions = append(extractions, &extraction)
	}

	return extractions, rows.Err()
}

// DeleteExtraction permanently removes an extraction. Its items go with
// it through the foreign key cascade.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return autoextract.Errorf(autoextract.ENOTFOUND, "extraction not found")
	}

	return nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
// SQLite only accepts OFFSET after LIMIT, so an offset on its own gets
// the no-limit sentinel.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
