package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/repository"
)

// PlayerRepository implements the player directory for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var _ repository.Directory = (*PlayerRepository)(nil)

// UpsertPlayer inserts a player profile or refreshes an existing one
func (r *PlayerRepository) UpsertPlayer(ctx context.Context, p *domain.Player) error {
	query := `
		INSERT INTO players (player_id, username, display_name, points, level_no, last_seen)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			points = EXCLUDED.points,
			level_no = EXCLUDED.level_no,
			last_seen = NOW()
	`
	if _, err := r.db.Exec(ctx, query, p.ID, p.Username, p.DisplayName, p.Points, p.Level); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpsertPlayer, err)
	}
	return nil
}

// GetPlayer returns a single player profile
func (r *PlayerRepository) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	query := `
		SELECT player_id, username, display_name, points, level_no
		FROM players
		WHERE player_id = $1
	`
	var p domain.Player
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Points, &p.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayer, err)
	}
	return &p, nil
}

// GetPlayers returns the known profiles among ids. Unknown ids are skipped.
func (r *PlayerRepository) GetPlayers(ctx context.Context, ids []string) ([]domain.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT player_id, username, display_name, points, level_no
		FROM players
		WHERE player_id = ANY($1)
		ORDER BY player_id
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayer, err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Points, &p.Level); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayer, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayer, err)
	}
	return players, nil
}
