package mie

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheStats reports the activity of an engine's result cache.
// Misses equals the number of coefficient computations performed.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// cacheEntry owns the coefficients of one parameter signature and the
// quantities derived from them.
type cacheEntry struct {
	coeffs Coefficients
	size   float64
	props  *Properties
}

// properties computes all six efficiencies on first use.
func (e *cacheEntry) properties() Properties {
	if e.props == nil {
		p := ComputeProperties(e.coeffs, e.size)
		e.props = &p
	}
	return *e.props
}

// s12 is not memoized: every angle is evaluated afresh.
func (e *cacheEntry) s12(u float64) (complex128, complex128, error) {
	return ComputeS12(e.coeffs, u)
}

// resultCache memoizes coefficient computations by exact signature.
// Without a bound entries are kept for the lifetime of the cache; with one,
// the least recently used entry is evicted.
//
// Not safe for concurrent use.
type resultCache struct {
	unbounded map[Signature]*cacheEntry
	bounded   *lru.Cache[Signature, *cacheEntry]
	hits      uint64
	misses    uint64
}

func newResultCache(maxEntries int) (*resultCache, error) {
	if maxEntries <= 0 {
		return &resultCache{unbounded: make(map[Signature]*cacheEntry)}, nil
	}
	bounded, err := lru.New[Signature, *cacheEntry](maxEntries)
	if err != nil {
		return nil, err
	}
	return &resultCache{bounded: bounded}, nil
}

func (c *resultCache) get(sig Signature) (*cacheEntry, bool) {
	if c.bounded != nil {
		return c.bounded.Get(sig)
	}
	e, ok := c.unbounded[sig]
	return e, ok
}

func (c *resultCache) put(sig Signature, e *cacheEntry) {
	if c.bounded != nil {
		c.bounded.Add(sig, e)
		return
	}
	c.unbounded[sig] = e
}

// lookup returns the entry for p, computing its coefficients on a miss.
// p must already be valid.
func (c *resultCache) lookup(p Parameters) (*cacheEntry, bool, error) {
	sig := p.Signature()
	if e, ok := c.get(sig); ok {
		c.hits++
		return e, true, nil
	}

	coeffs, err := ComputeCoefficients(p)
	if err != nil {
		return nil, false, err
	}
	c.misses++

	e := &cacheEntry{coeffs: coeffs, size: p.Size()}
	c.put(sig, e)
	return e, false, nil
}

func (c *resultCache) count() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.unbounded)
}

func (c *resultCache) stats() CacheStats {
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: c.count()}
}
