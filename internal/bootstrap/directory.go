package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/GrandChallenge_Go/internal/directory"
	"github.com/osse101/GrandChallenge_Go/internal/metrics"
)

// RegisterDirectoryMetrics exposes the player directory cache counters on reg
func RegisterDirectoryMetrics(reg prometheus.Registerer, players directory.Service) error {
	collector := metrics.NewDirectoryCacheCollector(func() metrics.DirectoryCacheStats {
		s := players.CacheStats()
		return metrics.DirectoryCacheStats{Hits: s.Hits, Misses: s.Misses, Size: s.Size}
	})
	if err := reg.Register(collector); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterDirectoryMetrics, err)
	}
	slog.Info(LogMsgDirectoryMetricsRegistered)
	return nil
}
