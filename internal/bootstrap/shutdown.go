package bootstrap

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/osse101/GrandChallenge_Go/internal/database"
	"github.com/osse101/GrandChallenge_Go/internal/discord"
	"github.com/osse101/GrandChallenge_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    *server.Server
	Announcer *discord.Announcer
	DBPool    database.Pool
	Sentry    bool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests, drain in-flight ones)
// 2. Discord announcer
// 3. Database pool
// 4. Sentry (flush buffered reports)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Announcer != nil {
		if err := components.Announcer.Close(); err != nil {
			slog.Error(LogMsgAnnouncerCloseFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	if components.Sentry && !sentry.Flush(SentryFlushTimeout) {
		slog.Warn(LogMsgSentryFlushIncomplete)
	}

	slog.Info(LogMsgServerStopped)
}
