package autoextract

// Default list-detection thresholds. Length bounds are in runes and
// apply to the text of candidate list links.
const (
	DefaultMinNumber           = 5
	DefaultMinLength           = 8
	DefaultMaxLength           = 35
	DefaultSimilarityThreshold = 0.8
)

// ListExtractor extracts repeated title/link items from an HTML page.
type ListExtractor interface {
	// ExtractList locates the dominant repeated list structure in the
	// page and returns its items in document order.
	//
	// Empty input returns (nil, nil). Returns ENOCANDIDATES when no
	// repeated structure passes the candidate filters, and
	// ENOLINKEDTITLE when the winning structure carries no links.
	ExtractList(html string) ([]Item, error)
}

// Similarity scores how alike two strings are.
type Similarity interface {
	// Compare returns a score in [0, 1]: 1 for identical strings,
	// 0 when either string is empty.
	Compare(a, b string) float64
}

// Cleaner strips markup that would distort structural comparison
// (scripts, styles, media, hidden blocks) before extraction.
type Cleaner interface {
	// Clean returns a rendered copy of the page with noise elements
	// removed and purely presentational wrappers dissolved.
	Clean(html string) (string, error)
}
