package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/repository"
)

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TournamentRepository implements the tournament repository for PostgreSQL
type TournamentRepository struct {
	db *pgxpool.Pool
}

// NewTournamentRepository creates a new TournamentRepository
func NewTournamentRepository(db *pgxpool.Pool) *TournamentRepository {
	return &TournamentRepository{db: db}
}

var _ repository.Tournament = (*TournamentRepository)(nil)

// CreateTournament inserts an empty tournament
func (r *TournamentRepository) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	query := `
		INSERT INTO tournaments (tournament_id, name, finished, champion_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, t.ID, t.Name, t.Finished, t.Champion, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertTournament, err)
	}
	return nil
}

// GetTournament loads the full aggregate: participants, rounds, standings and
// challenges. All reads share one repeatable-read snapshot so a concurrent
// save is seen either completely or not at all.
func (r *TournamentRepository) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	tx, err := r.beginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	query := `
		SELECT tournament_id, name, finished, champion_id, created_at, updated_at
		FROM tournaments
		WHERE tournament_id = $1
	`
	var t domain.Tournament
	err = tx.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Finished, &t.Champion, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTournament, err)
	}

	if t.Participants, err = loadParticipants(ctx, tx, id); err != nil {
		return nil, err
	}
	if t.Rounds, err = loadRounds(ctx, tx, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTournaments returns tournament headers ordered by creation time.
// Participants and rounds are not loaded.
func (r *TournamentRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	query := `
		SELECT tournament_id, name, finished, champion_id, created_at, updated_at
		FROM tournaments
		ORDER BY created_at, tournament_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListTournaments, err)
	}
	defer rows.Close()

	var tournaments []domain.Tournament
	for rows.Next() {
		var t domain.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Finished, &t.Champion, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgListTournaments, err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListTournaments, err)
	}
	return tournaments, nil
}

// ListRounds returns every round of a tournament in order
func (r *TournamentRepository) ListRounds(ctx context.Context, tournamentID uuid.UUID) ([]domain.Round, error) {
	tx, err := r.beginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	var exists bool
	err = tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM tournaments WHERE tournament_id = $1)", tournamentID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTournament, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, tournamentID)
	}
	return loadRounds(ctx, tx, tournamentID)
}

func (r *TournamentRepository) beginRead(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	return tx, nil
}

// SaveTournament replaces the stored aggregate with the given one in a single
// transaction. Child rows are deleted and rewritten with COPY.
func (r *TournamentRepository) SaveTournament(ctx context.Context, t *domain.Tournament) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE tournaments
		SET name = $2, finished = $3, champion_id = $4, updated_at = $5
		WHERE tournament_id = $1
	`, t.ID, t.Name, t.Finished, t.Champion, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateTournament, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, t.ID)
	}

	// rounds cascade to standings and challenges
	for _, stmt := range []string{
		"DELETE FROM tournament_rounds WHERE tournament_id = $1",
		"DELETE FROM tournament_participants WHERE tournament_id = $1",
	} {
		if _, err := tx.Exec(ctx, stmt, t.ID); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgClearTournament, err)
		}
	}

	if err := copyAggregate(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTx, err)
	}
	return nil
}

func copyAggregate(ctx context.Context, tx pgx.Tx, t *domain.Tournament) error {
	participants := make([][]any, 0, len(t.Participants))
	for _, p := range t.Participants {
		participants = append(participants, []any{t.ID, p.ID, p.Seed, p.Losses})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tableParticipants},
		[]string{"tournament_id", "participant_id", "seed", "losses"},
		pgx.CopyFromRows(participants)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCopyParticipants, err)
	}

	var rounds, standings, challenges [][]any
	for _, round := range t.Rounds {
		createdAt := round.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		rounds = append(rounds, []any{t.ID, round.Number, round.Closed, createdAt})
		for i, s := range round.Standings {
			standings = append(standings, []any{t.ID, round.Number, i, s.ParticipantID, s.Losses})
		}
		for _, c := range round.Challenges {
			challenges = append(challenges, []any{
				c.ID, t.ID, round.Number, c.Position, string(c.Branch),
				c.UserFrom, c.UserTo, c.Winner, string(c.Status), c.PlayedAt,
			})
		}
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tableRounds},
		[]string{"tournament_id", "round_number", "closed", "created_at"},
		pgx.CopyFromRows(rounds)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCopyRounds, err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tableStandings},
		[]string{"tournament_id", "round_number", "position", "participant_id", "losses"},
		pgx.CopyFromRows(standings)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCopyStandings, err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tableChallenges},
		[]string{"challenge_id", "tournament_id", "round_number", "position", "branch", "user_from", "user_to", "winner_id", "status", "played_at"},
		pgx.CopyFromRows(challenges)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCopyChallenges, err)
	}
	return nil
}

func loadParticipants(ctx context.Context, q querier, tournamentID uuid.UUID) ([]domain.Participant, error) {
	rows, err := q.Query(ctx, `
		SELECT participant_id, seed, losses
		FROM tournament_participants
		WHERE tournament_id = $1
		ORDER BY seed
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadParticipants, err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Seed, &p.Losses); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgLoadParticipants, err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadParticipants, err)
	}
	return participants, nil
}

func loadRounds(ctx context.Context, q querier, tournamentID uuid.UUID) ([]domain.Round, error) {
	rows, err := q.Query(ctx, `
		SELECT round_number, closed, created_at
		FROM tournament_rounds
		WHERE tournament_id = $1
		ORDER BY round_number
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadRounds, err)
	}
	defer rows.Close()

	var rounds []domain.Round
	index := make(map[int]int)
	for rows.Next() {
		var round domain.Round
		if err := rows.Scan(&round.Number, &round.Closed, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgLoadRounds, err)
		}
		round.Challenges = []domain.Challenge{}
		index[round.Number] = len(rounds)
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadRounds, err)
	}
	rows.Close()

	if err := loadStandings(ctx, q, tournamentID, rounds, index); err != nil {
		return nil, err
	}
	if err := loadChallenges(ctx, q, tournamentID, rounds, index); err != nil {
		return nil, err
	}
	return rounds, nil
}

func loadStandings(ctx context.Context, q querier, tournamentID uuid.UUID, rounds []domain.Round, index map[int]int) error {
	rows, err := q.Query(ctx, `
		SELECT round_number, participant_id, losses
		FROM round_standings
		WHERE tournament_id = $1
		ORDER BY round_number, position
	`, tournamentID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadStandings, err)
	}
	defer rows.Close()

	for rows.Next() {
		var number int
		var s domain.Standing
		if err := rows.Scan(&number, &s.ParticipantID, &s.Losses); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgLoadStandings, err)
		}
		if i, ok := index[number]; ok {
			rounds[i].Standings = append(rounds[i].Standings, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadStandings, err)
	}
	return nil
}

func loadChallenges(ctx context.Context, q querier, tournamentID uuid.UUID, rounds []domain.Round, index map[int]int) error {
	rows, err := q.Query(ctx, `
		SELECT challenge_id, round_number, position, branch, user_from, user_to, winner_id, status, played_at
		FROM challenges
		WHERE tournament_id = $1
		ORDER BY round_number, position
	`, tournamentID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadChallenges, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Challenge
		var branch, status string
		if err := rows.Scan(&c.ID, &c.RoundNumber, &c.Position, &branch, &c.UserFrom, &c.UserTo, &c.Winner, &status, &c.PlayedAt); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgLoadChallenges, err)
		}
		c.Branch = domain.Branch(branch)
		c.Status = domain.ChallengeStatus(status)
		if i, ok := index[c.RoundNumber]; ok {
			rounds[i].Challenges = append(rounds[i].Challenges, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadChallenges, err)
	}
	return nil
}
