package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/GrandChallenge_Go/internal/database"
)

// reset drops every GrandChallenge table by rolling the embedded migrations
// back to version 0, then migrates up again to an empty schema.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	pool, err := database.NewPool(connString, 2, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	log.Println("Rolling back all migrations...")
	if err := database.Rollback(ctx, pool); err != nil {
		log.Fatalf("Failed to roll back migrations: %v", err)
	}

	log.Println("Applying migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Database reset complete")
}
