package metrics

import (
	"context"

	"github.com/osse101/GrandChallenge_Go/internal/event"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
)

// EventMetricsCollector subscribes to tournament events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every tournament event
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.TournamentCreated,
		event.TournamentStarted,
		event.TournamentFinished,
		event.TournamentReset,
		event.RoundAdvanced,
		event.RoundClosed,
		event.ResultRecorded,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.TournamentCreated:
		TournamentsCreated.Inc()
	case event.TournamentStarted:
		TournamentsStarted.Inc()
	case event.TournamentFinished:
		TournamentsFinished.Inc()
	case event.TournamentReset:
		TournamentResets.Inc()
	case event.RoundAdvanced:
		RoundsAdvanced.Inc()
	case event.RoundClosed:
		RoundsClosed.Inc()
	case event.ResultRecorded:
		payload, err := event.DecodePayload[event.ResultPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		ResultsRecorded.WithLabelValues(payload.Branch).Inc()
		if payload.Eliminated {
			Eliminations.Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
