package util

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Interner deduplicates the names of symbolic constants, functors and
// predicates behind an LRU-bounded cache so a large
// ground program does not grow its symbol table without bound, per the
// domain stack entry in SPEC_FULL.md. Interning never changes Term
// equality (still structural) — it only lets repeated constants share one
// backing string allocation.
type Interner struct {
	cache *lru.Cache[string, string]
}

// NewInterner returns an Interner bounded to the given capacity. A capacity
// of 0 falls back to a sensible default so callers cannot accidentally
// construct an unusable zero-sized cache.
func NewInterner(capacity int) *Interner {
	if capacity <= 0 {
		capacity = 4096
	}
	c, err := lru.New[string, string](capacity)
	if err != nil {
		// Only returns an error for a non-positive size, which is excluded
		// above; keeping the panic documents that this is truly
		// unreachable rather than silently swallowing a real fault.
		panic(err)
	}
	return &Interner{cache: c}
}

// Intern returns a canonical copy of s: repeated calls with an equal
// string return the same backing value from the cache.
func (in *Interner) Intern(s string) string {
	if v, ok := in.cache.Get(s); ok {
		return v
	}
	in.cache.Add(s, s)
	return s
}
