package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DirectoryCacheStats is a point-in-time read of the player directory cache
type DirectoryCacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// DirectoryCacheCollector exports the player directory cache counters at scrape time
type DirectoryCacheCollector struct {
	stats  func() DirectoryCacheStats
	hits   *prometheus.Desc
	misses *prometheus.Desc
	size   *prometheus.Desc
}

// NewDirectoryCacheCollector creates a collector that reads stats on every scrape
func NewDirectoryCacheCollector(stats func() DirectoryCacheStats) *DirectoryCacheCollector {
	return &DirectoryCacheCollector{
		stats:  stats,
		hits:   prometheus.NewDesc(MetricNameDirectoryCacheHits, HelpTextDirectoryCacheHits, nil, nil),
		misses: prometheus.NewDesc(MetricNameDirectoryCacheMisses, HelpTextDirectoryCacheMisses, nil, nil),
		size:   prometheus.NewDesc(MetricNameDirectoryCacheSize, HelpTextDirectoryCacheSize, nil, nil),
	}
}

func (c *DirectoryCacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.size
}

func (c *DirectoryCacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size))
}
