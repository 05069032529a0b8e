package bootstrap

import "time"

// Sentry configuration
const (
	SentryFlushTimeout     = 2 * time.Second
	SentryTracesSampleRate = 0.0
)

// Log messages for startup
const (
	LogMsgStartingGrandChallenge         = "Starting GrandChallenge"
	LogMsgSentryInitialized              = "Sentry error reporting initialized"
	LogMsgSentryDisabled                 = "Sentry DSN not set, error reporting disabled"
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgDirectoryMetricsRegistered     = "Player directory cache metrics registered"
	LogMsgDiscordAnnouncerRegistered     = "Discord announcer registered"
	LogMsgDiscordDisabled                = "Discord token or channel not set, announcements disabled"
	ErrMsgFailedInitSentry               = "failed to initialize sentry"
	ErrMsgFailedCreateAnnouncer          = "failed to create discord announcer"
	ErrMsgFailedRegisterDirectoryMetrics = "failed to register directory cache metrics"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgAnnouncerCloseFailed  = "Discord announcer close failed"
	LogMsgSentryFlushIncomplete = "Sentry flush timed out, some events may be lost"
)
