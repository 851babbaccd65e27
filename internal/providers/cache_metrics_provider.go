package providers

import "runlog/internal/structures"

// MetricsCacheProvider counts hits and misses of the wrapped cache.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) Clear() {
	c.inner.Clear()
}

// NewInstrumentedCacheProvider returns the plain no-op cache when caching is
// disabled, so no phantom misses get counted.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
