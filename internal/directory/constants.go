package directory

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgDirectoryLookupFailed = "Player directory lookup failed"
)
