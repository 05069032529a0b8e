package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GrandChallenge_Go/internal/config"
	"github.com/osse101/GrandChallenge_Go/internal/discord"
	"github.com/osse101/GrandChallenge_Go/internal/event"
	"github.com/osse101/GrandChallenge_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Names    discord.NameResolver
	Config   *config.Config
}

// InitializeEventSystem creates the in-process event bus
func InitializeEventSystem() event.Bus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)
	return bus
}

// RegisterEventHandlers subscribes the metrics collector and, when Discord is
// configured, the channel announcer. The returned announcer is nil when
// announcements are disabled.
func RegisterEventHandlers(deps EventHandlerDependencies) (*discord.Announcer, error) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Config.DiscordToken == "" || deps.Config.DiscordChannelID == "" {
		slog.Info(LogMsgDiscordDisabled)
		return nil, nil
	}

	announcer, err := discord.New(discord.Config{
		Token:     deps.Config.DiscordToken,
		ChannelID: deps.Config.DiscordChannelID,
	}, deps.Names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateAnnouncer, err)
	}
	announcer.Register(deps.EventBus)
	slog.Info(LogMsgDiscordAnnouncerRegistered, "channel_id", deps.Config.DiscordChannelID)

	return announcer, nil
}
