package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/bloom"
	"github.com/stretchr/testify/assert"
)

func TestItemFilter_AddAndSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewItemFilter(1000, 0.01)
	item := autoextract.Item{Title: "BreakingStoryHeadline", Href: "https://example.com/post/1"}

	// Item not yet added should return false
	assert.False(t, f.Seen(item))

	// Add item
	f.Add(item)

	// Now it should return true
	assert.True(t, f.Seen(item))

	// Different item should still return false
	assert.False(t, f.Seen(autoextract.Item{Title: "BreakingStoryHeadline", Href: "https://example.com/post/2"}))
}

func TestItemFilter_TitleChangesFingerprint(t *testing.T) {
	t.Parallel()

	f := bloom.NewItemFilter(1000, 0.01)
	f.Add(autoextract.Item{Title: "OriginalHeadline", Href: "https://example.com/post/1"})

	// Same href with a different title is a different item
	assert.False(t, f.Seen(autoextract.Item{Title: "UpdatedHeadline", Href: "https://example.com/post/1"}))
}

func TestItemFilter_AddIfNew(t *testing.T) {
	t.Parallel()

	f := bloom.NewItemFilter(1000, 0.01)
	item := autoextract.Item{Title: "BreakingStoryHeadline", Href: "https://example.com/post/1"}

	assert.True(t, f.AddIfNew(item), "first add reports new")
	assert.False(t, f.AddIfNew(item), "second add reports seen")
	assert.True(t, f.Seen(item))
}

func TestItemFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewItemFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	// Add some items
	for i := range 3 {
		f.Add(autoextract.Item{Title: fmt.Sprintf("Headline%d", i), Href: fmt.Sprintf("/post/%d", i)})
	}

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestItemFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewItemFilter(numItems, fpRate)

	// Add 10k items
	for i := range numItems {
		f.Add(autoextract.Item{Title: "AddedHeadline", Href: fmt.Sprintf("https://example.com/added/%d", i)})
	}

	// Probe with 10k items that were NOT added
	falsePositives := 0
	for i := range testProbes {
		item := autoextract.Item{Title: "AddedHeadline", Href: fmt.Sprintf("https://example.com/notadded/%d", i)}
		if f.Seen(item) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
