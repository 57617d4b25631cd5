package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
)

// DefaultCacheSize is the number of file contents an ExtractCache remembers
// when no size is given.
const DefaultCacheSize = 4096

// ExtractCache remembers the directives found in file contents, keyed by
// dialect and content hash, so repeated scans of an unchanged tree skip
// parsing. It is safe for concurrent use.
type ExtractCache struct {
	entries *lru.Cache[string, []dialect.Directive]
}

// NewExtractCache creates a cache holding up to size entries.
func NewExtractCache(size int) (*ExtractCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []dialect.Directive](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create extract cache: %w", err)
	}
	return &ExtractCache{entries: entries}, nil
}

// Len reports how many contents are cached.
func (c *ExtractCache) Len() int {
	return c.entries.Len()
}

// extract works on a nil cache, in which case nothing is remembered.
func (c *ExtractCache) extract(content []byte, d dialect.Dialect) []dialect.Directive {
	if c == nil {
		return dialect.Extract(content, d)
	}

	key := cacheKey(d, content)
	if directives, ok := c.entries.Get(key); ok {
		return directives
	}
	directives := dialect.Extract(content, d)
	c.entries.Add(key, directives)
	return directives
}

func cacheKey(d dialect.Dialect, content []byte) string {
	sum := sha256.Sum256(content)
	return d.Name + ":" + hex.EncodeToString(sum[:])
}
