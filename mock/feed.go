package mock

import (
	"io"

	"github.com/fwojciec/autoextract"
)

var _ autoextract.FeedWriter = (*FeedWriter)(nil)

// FeedWriter is a mock implementation of autoextract.FeedWriter.
type FeedWriter struct {
	WriteFeedFn func(w io.Writer, feed *autoextract.Feed) error
}

func (f *FeedWriter) WriteFeed(w io.Writer, feed *autoextract.Feed) error {
	return f.WriteFeedFn(w, feed)
}
