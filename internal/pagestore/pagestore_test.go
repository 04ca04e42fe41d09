package pagestore_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/resume-ranker/internal/pagestore"
)

func TestDocument_SetOCRText(t *testing.T) {
	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 3)
	require.False(t, d.HasOCRText())

	require.NoError(t, d.SetOCRText([]string{"a", "b", "c"}))
	require.True(t, d.HasOCRText())

	p, ok := d.Page(1)
	require.True(t, ok)
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, "b", p.Markdown)

	_, ok = d.Page(3)
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, d.Texts())
}

func TestDocument_SetOCRTextPageMismatch(t *testing.T) {
	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 3)
	assert.Error(t, d.SetOCRText([]string{"only one"}))
}

func TestDocument_SetOCRTextImmutable(t *testing.T) {
	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 1)
	require.NoError(t, d.SetOCRText([]string{"a"}))
	assert.Error(t, d.SetOCRText([]string{"b"}))
}

func TestDocument_HashChangesWithBytes(t *testing.T) {
	a := pagestore.NewDocument("x.pdf", []byte("one"), 1)
	b := pagestore.NewDocument("x.pdf", []byte("two"), 1)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestPreviewCache_Memoizes(t *testing.T) {
	calls := 0
	cache := pagestore.NewPreviewCache(10, func(doc *pagestore.Document, page int) (string, error) {
		calls++
		return fmt.Sprintf("%s:%d", doc.Filename, page), nil
	})

	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 2)

	v1, err := cache.Get(d, 0)
	require.NoError(t, err)
	v2, err := cache.Get(d, 0)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, calls, "second lookup must hit the cache")
}

func TestPreviewCache_KeyedByDocumentHash(t *testing.T) {
	calls := 0
	cache := pagestore.NewPreviewCache(10, func(doc *pagestore.Document, page int) (string, error) {
		calls++
		return doc.Hash, nil
	})

	a := pagestore.NewDocument("a.pdf", []byte("one"), 1)
	b := pagestore.NewDocument("b.pdf", []byte("two"), 1)

	_, err := cache.Get(a, 0)
	require.NoError(t, err)
	_, err = cache.Get(b, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "different documents must not share entries")
}

func TestPreviewCache_Invalidate(t *testing.T) {
	calls := 0
	cache := pagestore.NewPreviewCache(10, func(doc *pagestore.Document, page int) (string, error) {
		calls++
		return "p", nil
	})
	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 1)

	_, _ = cache.Get(d, 0)
	cache.Invalidate()
	assert.Equal(t, 0, cache.Len())

	_, _ = cache.Get(d, 0)
	assert.Equal(t, 2, calls, "invalidate must force a re-render")
}

func TestPreviewCache_EvictsOldest(t *testing.T) {
	cache := pagestore.NewPreviewCache(2, func(doc *pagestore.Document, page int) (string, error) {
		return fmt.Sprintf("%d", page), nil
	})
	d := pagestore.NewDocument("resumes.pdf", []byte("raw"), 3)

	_, _ = cache.Get(d, 0)
	_, _ = cache.Get(d, 1)
	_, _ = cache.Get(d, 2)
	assert.Equal(t, 2, cache.Len())
}
