package config

import "time"

// Defaults applied when the environment does not set a value
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "grand-challenge"
	DefaultVersion     = "dev"

	MaxPort = 65535
)

// Database pool defaults
const (
	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 30 * time.Minute
	DefaultDBMaxConnLifetime = time.Hour
)

// Bracket defaults
const (
	DefaultFinalRound     = 9
	DefaultLastFinalRound = 10
	DefaultMaxLosses      = 2
)

// Player directory cache defaults
const (
	DefaultDirectoryCacheSize = 1000
	DefaultDirectoryCacheTTL  = 5 * time.Minute
)

// Tournament service defaults
const (
	DefaultSnapshotCacheSize = 128
	DefaultDashboardLocale   = "en"
)
