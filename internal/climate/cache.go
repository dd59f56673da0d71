package climate

import (
	"fmt"

	"github.com/couchcryptid/propa-engine/internal/lru"
	"github.com/couchcryptid/propa-engine/internal/observability"
)

// CachedSource wraps a Source with an in-memory LRU cache keyed by quantity,
// position and time percentage. Errors are never cached.
type CachedSource struct {
	inner   Source
	cache   *lru.Cache[float64]
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a climate source.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   lru.New[float64](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Name() string { return c.inner.Name() }

func (c *CachedSource) lookup(quantity string, lat, lon, p float64, fn func() (float64, error)) (float64, error) {
	key := fmt.Sprintf("%s:%.6f,%.6f,%g", quantity, lat, lon, p)
	if v, ok := c.cache.Get(key); ok {
		c.count(quantity, "hit")
		return v, nil
	}
	c.count(quantity, "miss")

	v, err := fn()
	if err != nil {
		return 0, err
	}
	c.cache.Put(key, v)
	return v, nil
}

func (c *CachedSource) count(quantity, result string) {
	if c.metrics != nil {
		c.metrics.ClimateCache.WithLabelValues(quantity, result).Inc()
	}
}

func (c *CachedSource) RainIntensity(lat, lon, p float64) (float64, error) {
	return c.lookup("rain_intensity", lat, lon, p, func() (float64, error) {
		return c.inner.RainIntensity(lat, lon, p)
	})
}

func (c *CachedSource) Nwet(lat, lon float64) (float64, error) {
	return c.lookup("nwet", lat, lon, 0, func() (float64, error) {
		return c.inner.Nwet(lat, lon)
	})
}

func (c *CachedSource) RainHeight(lat, lon float64) (float64, error) {
	return c.lookup("rain_height", lat, lon, 0, func() (float64, error) {
		return c.inner.RainHeight(lat, lon)
	})
}

func (c *CachedSource) LWCC(lat, lon, p float64) (float64, error) {
	return c.lookup("lwcc", lat, lon, p, func() (float64, error) {
		return c.inner.LWCC(lat, lon, p)
	})
}

func (c *CachedSource) SWVD(lat, lon float64) (float64, error) {
	return c.lookup("swvd", lat, lon, 0, func() (float64, error) {
		return c.inner.SWVD(lat, lon)
	})
}

func (c *CachedSource) IWVC(lat, lon, p float64) (float64, error) {
	return c.lookup("iwvc", lat, lon, p, func() (float64, error) {
		return c.inner.IWVC(lat, lon, p)
	})
}

func (c *CachedSource) Temperature(lat, lon float64) (float64, error) {
	return c.lookup("temperature", lat, lon, 0, func() (float64, error) {
		return c.inner.Temperature(lat, lon)
	})
}
