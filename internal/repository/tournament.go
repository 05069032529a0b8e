package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// Tournament defines the interface for tournament data access.
// GetTournament loads the whole aggregate; SaveTournament replaces it atomically.
type Tournament interface {
	CreateTournament(ctx context.Context, tournament *domain.Tournament) error
	GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
	ListRounds(ctx context.Context, tournamentID uuid.UUID) ([]domain.Round, error)
	SaveTournament(ctx context.Context, tournament *domain.Tournament) error
}
