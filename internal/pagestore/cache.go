package pagestore

import (
	"sync"
)

// RenderFunc produces the preview for one page of a document.
type RenderFunc func(doc *Document, page int) (string, error)

type cacheKey struct {
	hash string
	page int
}

// PreviewCache memoizes page previews keyed by (documentHash, pageIndex).
// It is bounded: once full, the oldest entry is evicted. Invalidate must be
// called when a new document replaces the current one.
type PreviewCache struct {
	mu      sync.Mutex
	render  RenderFunc
	max     int
	entries map[cacheKey]string
	order   []cacheKey
}

// NewPreviewCache builds a cache holding at most max rendered previews.
func NewPreviewCache(max int, render RenderFunc) *PreviewCache {
	if max <= 0 {
		max = 50
	}
	return &PreviewCache{
		render:  render,
		max:     max,
		entries: make(map[cacheKey]string),
	}
}

// Get returns the preview for (doc, page), rendering on a miss.
func (c *PreviewCache) Get(doc *Document, page int) (string, error) {
	key := cacheKey{hash: doc.Hash, page: page}

	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.render(doc, page)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.entries[key] = v
		c.order = append(c.order, key)
	}
	return v, nil
}

// Invalidate drops every cached preview.
func (c *PreviewCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]string)
	c.order = nil
}

// Len reports the number of cached previews.
func (c *PreviewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
