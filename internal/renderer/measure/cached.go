package measure

import (
	"strconv"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache lifetimes for memoized measurements.
const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cached memoizes another Measurer per (scale, line). Lines that scroll out
// of view expire after DefaultExpiration.
//
// The returned slices are shared between callers and must not be modified.
type Cached struct {
	inner  Measurer
	cache  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCached wraps m with a memoizing cache.
func NewCached(m Measurer, expiration, cleanupInterval time.Duration) *Cached {
	return &Cached{
		inner: m,
		cache: gocache.New(expiration, cleanupInterval),
	}
}

// Advances implements Measurer.
func (c *Cached) Advances(line string, scale float64) ([]float64, error) {
	key := cacheKey(line, scale)
	if v, found := c.cache.Get(key); found {
		if adv, ok := v.([]float64); ok {
			c.hits.Add(1)
			return adv, nil
		}
	}

	c.misses.Add(1)
	adv, err := c.inner.Advances(line, scale)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, adv)
	return adv, nil
}

// LineHeight implements Measurer.
func (c *Cached) LineHeight(scale float64) float64 {
	return c.inner.LineHeight(scale)
}

// Flush drops every memoized measurement. Call it when the underlying
// face or tab width changes.
func (c *Cached) Flush() {
	c.cache.Flush()
}

// Stats returns the hit and miss counts.
func (c *Cached) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func cacheKey(line string, scale float64) string {
	return strconv.FormatFloat(scale, 'g', -1, 64) + "\x00" + line
}
