package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GrandChallenge_Go/internal/database/postgres"
	"github.com/osse101/GrandChallenge_Go/internal/repository"
)

// Repositories groups the PostgreSQL-backed stores
type Repositories struct {
	Tournament repository.Tournament
	Directory  repository.Directory
}

// InitializeRepositories builds every repository on one pool
func InitializeRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Tournament: postgres.NewTournamentRepository(pool),
		Directory:  postgres.NewPlayerRepository(pool),
	}
}
