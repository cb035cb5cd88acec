// Package etree renders extracted feeds as RSS 2.0 XML.
package etree

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/autoextract"
)

// Ensure FeedWriter implements autoextract.FeedWriter.
var _ autoextract.FeedWriter = (*FeedWriter)(nil)

// FeedWriter renders feeds as RSS 2.0 documents.
type FeedWriter struct{}

// NewFeedWriter creates a new FeedWriter.
func NewFeedWriter() *FeedWriter {
	return &FeedWriter{}
}

// WriteFeed writes the feed to w as an RSS 2.0 document.
func (fw *FeedWriter) WriteFeed(w io.Writer, feed *autoextract.Feed) error {
	if err := feed.Validate(); err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(feed.Title)
	if feed.Link != "" {
		channel.CreateElement("link").SetText(feed.Link)
	}
	if feed.Description != "" {
		channel.CreateElement("description").SetText(feed.Description)
	}

	for _, item := range feed.Items {
		el := channel.CreateElement("item")
		el.CreateElement("title").SetText(item.Title)
		el.CreateElement("link").SetText(item.Href)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing rss feed: %w", err)
	}
	return nil
}
