package app

import (
	"sync"

	"tableflip.dev/anno/pkg/entry"
)

// ColorCache memoizes per-entry display colors by id. The color is a pure
// function of entry content, so the cache is a derived artifact owned by
// whoever owns entry mutation: Service invalidates it synchronously on
// every content change. Never a package-level singleton.
type ColorCache struct {
	mu     sync.Mutex
	colors map[int64]string
}

func NewColorCache() *ColorCache {
	return &ColorCache{colors: make(map[int64]string)}
}

// Color returns the memoized display color for the entry, computing it on
// first use. Unsaved entries (id 0) are never cached.
func (c *ColorCache) Color(e *entry.Entry) string {
	if e == nil {
		return entry.DisplayColor(nil)
	}
	if !e.Saved() {
		return entry.DisplayColor(e)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if col, ok := c.colors[e.ID]; ok {
		return col
	}
	col := entry.DisplayColor(e)
	c.colors[e.ID] = col
	return col
}

// Invalidate drops the cached color for an id. Called whenever the
// entry's content changes.
func (c *ColorCache) Invalidate(id int64) {
	c.mu.Lock()
	delete(c.colors, id)
	c.mu.Unlock()
}

// Reset drops every cached color, used on full reloads.
func (c *ColorCache) Reset() {
	c.mu.Lock()
	c.colors = make(map[int64]string)
	c.mu.Unlock()
}
