package oracle

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
)

// CachedOracle memoizes predictions by feature vector
type CachedOracle struct {
	next   Oracle
	cache  *cache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCachedOracle wraps next. A zero ttl keeps entries forever.
func NewCachedOracle(next Oracle, ttl time.Duration) *CachedOracle {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl * 2
	}
	return &CachedOracle{
		next:  next,
		cache: cache.New(expiration, cleanup),
	}
}

// Predict returns the cached distribution or asks the wrapped oracle
func (c *CachedOracle) Predict(ctx context.Context, features []float64) (models.Probabilities, error) {
	key := cacheKey(features)
	if cached, found := c.cache.Get(key); found {
		if probs, ok := cached.(models.Probabilities); ok {
			c.hits.Add(1)
			c.updateMetrics()
			return probs, nil
		}
	}

	c.misses.Add(1)
	c.updateMetrics()

	probs, err := c.next.Predict(ctx, features)
	if err != nil {
		return probs, err
	}
	c.cache.SetDefault(key, probs)
	return probs, nil
}

// Stats returns cache statistics
func (c *CachedOracle) Stats() (hits, misses uint64, ratio float64) {
	hits = c.hits.Load()
	misses = c.misses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of cached vectors
func (c *CachedOracle) ItemCount() int {
	return c.cache.ItemCount()
}

// Clear flushes the cache and resets statistics
func (c *CachedOracle) Clear() {
	c.cache.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *CachedOracle) updateMetrics() {
	_, _, ratio := c.Stats()
	metrics.UpdateOracleCacheHitRatio(ratio)
}

func cacheKey(features []float64) string {
	var b strings.Builder
	for i, v := range features {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
