package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Tournament event types
const (
	TournamentCreated  Type = "tournament.created"
	TournamentStarted  Type = "tournament.started"
	TournamentFinished Type = "tournament.finished"
	TournamentReset    Type = "tournament.reset"
	RoundAdvanced      Type = "round.advanced"
	RoundClosed        Type = "round.closed"
	ResultRecorded     Type = "challenge.result_recorded"
)

// TournamentPayloadV1 is the payload for created, started and reset events
type TournamentPayloadV1 struct {
	TournamentID     uuid.UUID `json:"tournament_id"`
	Name             string    `json:"name"`
	ParticipantCount int       `json:"participant_count"`
	Timestamp        int64     `json:"timestamp"`
}

// RoundPayloadV1 is the payload for round lifecycle events
type RoundPayloadV1 struct {
	TournamentID     uuid.UUID `json:"tournament_id"`
	TournamentName   string    `json:"tournament_name"`
	RoundNumber      int       `json:"round_number"`
	Phase            string    `json:"phase"`
	ChallengeCount   int       `json:"challenge_count"`
	ParticipantCount int       `json:"participant_count"`
	Timestamp        int64     `json:"timestamp"`
}

// ResultPayloadV1 is the payload for recorded challenge results
type ResultPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	ChallengeID  uuid.UUID `json:"challenge_id"`
	RoundNumber  int       `json:"round_number"`
	Branch       string    `json:"branch"`
	Winner       string    `json:"winner"`
	Loser        string    `json:"loser"`
	LoserLosses  int       `json:"loser_losses"`
	Eliminated   bool      `json:"eliminated"`
	Timestamp    int64     `json:"timestamp"`
}

// FinishedPayloadV1 is the payload for tournament.finished
type FinishedPayloadV1 struct {
	TournamentID   uuid.UUID `json:"tournament_id"`
	TournamentName string    `json:"tournament_name"`
	Champion       string    `json:"champion,omitempty"`
	Rounds         int       `json:"rounds"`
	Timestamp      int64     `json:"timestamp"`
}

func newEvent(t Type, payload interface{}, tournamentID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
		Metadata: map[string]interface{}{
			"tournament_id": tournamentID.String(),
		},
	}
}

// NewTournamentEvent creates a created, started or reset event
func NewTournamentEvent(t Type, id uuid.UUID, name string, participants int) Event {
	return newEvent(t, TournamentPayloadV1{
		TournamentID:     id,
		Name:             name,
		ParticipantCount: participants,
		Timestamp:        time.Now().Unix(),
	}, id)
}

// NewRoundEvent creates a round.advanced or round.closed event
func NewRoundEvent(t Type, payload RoundPayloadV1) Event {
	payload.Timestamp = time.Now().Unix()
	return newEvent(t, payload, payload.TournamentID)
}

// NewResultRecordedEvent creates a challenge.result_recorded event
func NewResultRecordedEvent(payload ResultPayloadV1) Event {
	payload.Timestamp = time.Now().Unix()
	return newEvent(ResultRecorded, payload, payload.TournamentID)
}

// NewTournamentFinishedEvent creates a tournament.finished event
func NewTournamentFinishedEvent(id uuid.UUID, name string, champion *string, rounds int) Event {
	payload := FinishedPayloadV1{
		TournamentID:   id,
		TournamentName: name,
		Rounds:         rounds,
		Timestamp:      time.Now().Unix(),
	}
	if champion != nil {
		payload.Champion = *champion
	}
	return newEvent(TournamentFinished, payload, id)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously and
// aggregates their errors.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to several event types
func (b *MemoryBus) SubscribeAll(handler Handler, eventTypes ...Type) {
	for _, t := range eventTypes {
		b.Subscribe(t, handler)
	}
}
