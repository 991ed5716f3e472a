// Package cache implements the optional two-tier parse cache used by
// pkg/driver (§4.7): an in-process LRU in front of an on-disk SQLite store.
// Both tiers are purely a speed optimization — a nil Store, or a Store whose
// backing database is empty, must produce identical ResolveImports results
// to a warm cache, only slower.
package cache

import (
	"github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"
)

// Entry is the cached metadata for one successfully parsed file. The AST
// itself is never cached (its arena is tied to the source buffer's
// lifetime); only enough is kept to recognize an unchanged file and report
// its prior outcome for observability (see pkg/driver).
type Entry struct {
	ContentHash  string
	ErrorCount   int
	WarningCount int
	SchemaName   string
}

// Store is consulted by the driver after it reads a file from disk, keyed by
// path and content hash. A nil Store is always a miss.
type Store interface {
	Lookup(path, contentHash string) (Entry, bool)
	Put(path string, entry Entry)
}

// TwoTier is an L1 (in-memory LRU) + L2 (SQLite, via gorm) Store. A lookup
// checks L1 first; an L1 miss falls through to L2 and, on an L2 hit,
// repopulates L1. A Put always writes through both tiers.
type TwoTier struct {
	l1 *lru.Cache[string, Entry]
	l2 *gorm.DB
}

// NewTwoTier constructs a TwoTier cache with an L1 capacity of l1Size
// entries, backed by db (already migrated via Migrate). db may be nil to
// run L1-only (useful for tests and for callers with no durable storage).
func NewTwoTier(l1Size int, db *gorm.DB) (*TwoTier, error) {
	l1, err := lru.New[string, Entry](l1Size)
	if err != nil {
		return nil, err
	}

	return &TwoTier{l1: l1, l2: db}, nil
}

// Lookup reports whether path's content at contentHash was previously
// parsed, and if so returns its cached outcome.
func (c *TwoTier) Lookup(path, contentHash string) (Entry, bool) {
	if e, ok := c.l1.Get(path); ok && e.ContentHash == contentHash {
		return e, true
	}

	if c.l2 == nil {
		return Entry{}, false
	}

	var row cacheRow

	result := c.l2.Where("path = ? AND content_hash = ?", path, contentHash).First(&row)
	if result.Error != nil {
		return Entry{}, false
	}

	entry := row.toEntry()
	c.l1.Add(path, entry)

	return entry, true
}

// Put records entry as the outcome of parsing path, writing through both
// tiers. L2 write failures are ignored: Put returns no error and nothing is
// logged, so a cache-write failure never becomes a resolution failure.
func (c *TwoTier) Put(path string, entry Entry) {
	c.l1.Add(path, entry)

	if c.l2 == nil {
		return
	}

	row := fromEntry(path, entry)
	c.l2.Save(&row)
}
