package highlight

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	fileID string
	theme  Theme
}

func (k cacheKey) String() string {
	return string(k.theme) + "\x00" + k.fileID
}

// Cache memoises another Highlighter by (FileID, Theme). It is safe for
// concurrent use; concurrent misses on one key share a single call to the
// wrapped highlighter.
type Cache struct {
	next  Highlighter
	group singleflight.Group

	mu      sync.Mutex
	entries map[cacheKey][][]Token
}

// NewCache wraps next with a memo table.
func NewCache(next Highlighter) *Cache {
	return &Cache{
		next:    next,
		entries: make(map[cacheKey][][]Token),
	}
}

// Highlight returns the cached rows for the request's key, calling the
// wrapped highlighter on a miss. Failures are not cached.
func (c *Cache) Highlight(ctx context.Context, req Request) ([][]Token, error) {
	key := cacheKey{fileID: req.FileID, theme: req.Theme}

	if rows, ok := c.lookup(key); ok {
		return rows, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A flight that finished just before this one started has already
		// filled the entry.
		if rows, ok := c.lookup(key); ok {
			return rows, nil
		}
		rows, err := c.next.Highlight(ctx, req)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = rows
		c.mu.Unlock()
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([][]Token), nil
}

func (c *Cache) lookup(key cacheKey) ([][]Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.entries[key]
	return rows, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
