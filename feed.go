package autoextract

import "io"

// Feed represents extracted items packaged for syndication output.
type Feed struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

// Validate returns an error if the feed contains invalid fields.
func (f *Feed) Validate() error {
	if f.Title == "" {
		return Errorf(EINVALID, "feed title required")
	}
	return nil
}

// FeedWriter renders a feed to an output stream.
type FeedWriter interface {
	// WriteFeed writes the feed to w.
	WriteFeed(w io.Writer, feed *Feed) error
}
