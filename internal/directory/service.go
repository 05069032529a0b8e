package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
	"github.com/osse101/GrandChallenge_Go/internal/repository"
)

// Service resolves participant ids to player profiles
type Service interface {
	// ResolveNames returns a display name for every id. Unknown players and
	// lookup failures fall back to the raw id.
	ResolveNames(ctx context.Context, ids []string) map[string]string
	Players(ctx context.Context, ids []string) (map[string]domain.Player, error)
	CacheStats() CacheStats
}

type service struct {
	repo  repository.Directory
	cache *playerCache
}

// NewService creates a directory service backed by repo with an expiring LRU in front
func NewService(repo repository.Directory, cfg CacheConfig) Service {
	return &service{
		repo:  repo,
		cache: newPlayerCache(cfg),
	}
}

func (s *service) Players(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	players := make(map[string]domain.Player, len(ids))
	var missing []string
	for _, id := range ids {
		if p, ok := s.cache.Get(id); ok {
			players[id] = p
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return players, nil
	}

	fetched, err := s.repo.GetPlayers(ctx, missing)
	if err != nil {
		return players, fmt.Errorf("failed to fetch players: %w", err)
	}
	for _, p := range fetched {
		s.cache.Set(p)
		players[p.ID] = p
	}
	return players, nil
}

func (s *service) ResolveNames(ctx context.Context, ids []string) map[string]string {
	players, err := s.Players(ctx, ids)
	if err != nil && !errors.Is(err, domain.ErrPlayerNotFound) {
		logger.FromContext(ctx).Warn(LogMsgDirectoryLookupFailed, "error", err, "count", len(ids))
	}

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if p, ok := players[id]; ok && p.Name() != "" {
			names[id] = p.Name()
			continue
		}
		names[id] = id
	}
	return names
}

func (s *service) CacheStats() CacheStats {
	return s.cache.GetStats()
}
