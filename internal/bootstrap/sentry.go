package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/osse101/GrandChallenge_Go/internal/config"
)

// InitSentry configures the global Sentry client. It reports false without
// error when no DSN is configured.
func InitSentry(cfg *config.Config) (bool, error) {
	if cfg.SentryDSN == "" {
		slog.Info(LogMsgSentryDisabled)
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.Version,
		TracesSampleRate: SentryTracesSampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedInitSentry, err)
	}

	slog.Info(LogMsgSentryInitialized, "environment", cfg.Environment)
	return true, nil
}
