package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/autoextract"
)

// Ensure LoggingExtractor implements autoextract.ListExtractor.
var _ autoextract.ListExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ListExtractor with debug logging.
type LoggingExtractor struct {
	next   autoextract.ListExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next autoextract.ListExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractList logs the extraction outcome and delegates to the wrapped extractor.
func (e *LoggingExtractor) ExtractList(markup string) (items []autoextract.Item, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract list",
			"bytes", len(markup),
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractList(markup)
}
