package autoextract_test

import (
	"testing"

	"github.com/fwojciec/autoextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveItems(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative hrefs against the base", func(t *testing.T) {
		t.Parallel()

		items := []autoextract.Item{
			{Title: "Root Relative", Href: "/post/1"},
			{Title: "Path Relative", Href: "post/2"},
			{Title: "Absolute", Href: "https://other.example/x"},
		}

		got, err := autoextract.ResolveItems("https://example.com/news/", items)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "https://example.com/post/1", got[0].Href)
		assert.Equal(t, "https://example.com/news/post/2", got[1].Href)
		assert.Equal(t, "https://other.example/x", got[2].Href)
		assert.Equal(t, "Root Relative", got[0].Title)
	})

	t.Run("invalid base url", func(t *testing.T) {
		t.Parallel()

		_, err := autoextract.ResolveItems("://bad", []autoextract.Item{{Title: "T", Href: "/x"}})

		require.Error(t, err)
		assert.Equal(t, autoextract.EINVALID, autoextract.ErrorCode(err))
	})

	t.Run("keeps unparseable hrefs verbatim", func(t *testing.T) {
		t.Parallel()

		items := []autoextract.Item{{Title: "Bad", Href: "\x00broken"}}

		got, err := autoextract.ResolveItems("https://example.com/", items)

		require.NoError(t, err)
		assert.Equal(t, "\x00broken", got[0].Href)
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		t.Parallel()

		items := []autoextract.Item{{Title: "T", Href: "/post/1"}}

		_, err := autoextract.ResolveItems("https://example.com/", items)

		require.NoError(t, err)
		assert.Equal(t, "/post/1", items[0].Href)
	})
}
