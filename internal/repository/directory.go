package repository

import (
	"context"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// Directory defines the interface for player profile lookups
type Directory interface {
	GetPlayer(ctx context.Context, id string) (*domain.Player, error)
	GetPlayers(ctx context.Context, ids []string) ([]domain.Player, error)
}
