package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// RistrettoChartCache keeps rendered chart PNGs so repeated API requests for
// the same (code, latest date) do not re-render the image.
type RistrettoChartCache struct {
	cache *ristretto.Cache
}

func NewChartCache(maxItems int64) (*RistrettoChartCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create chart cache failed: %w", err)
	}
	return &RistrettoChartCache{cache: c}, nil
}

func (c *RistrettoChartCache) Get(key string) ([]byte, bool) {
	if v, ok := c.cache.Get(key); ok {
		png, ok := v.([]byte)
		return png, ok
	}
	return nil, false
}

func (c *RistrettoChartCache) Set(key string, png []byte) {
	c.cache.Set(key, png, 1)
}

func (c *RistrettoChartCache) Close() { c.cache.Close() }

// Key builds the cache key for a currency's chart as of a given date.
func Key(code, date string) string { return code + ":" + date }
