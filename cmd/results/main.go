// Command results prints the vote summary of every session, or of a single
// session when -session-id is given. Meant for poll-closing reports.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, sessionID string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&sessionID, "session-id", "", "Restrict the report to one session")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	sessionRepo := postgres.NewSessionRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	summaryService := services.NewSummaryService(sessionRepo, resultRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var ids []uuid.UUID
	if sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			log.Fatalf("Invalid session id: %v", err)
		}
		ids = append(ids, id)
	} else {
		sessions, err := sessionRepo.GetAll(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, session := range sessions {
			ids = append(ids, session.ID)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, id := range ids {
		results, err := summaryService.Results(ctx, id)
		if err != nil {
			log.Fatalf("Error summarizing session %s: %v", id, err)
		}
		if err := encoder.Encode(results); err != nil {
			log.Fatal(err)
		}
	}
}
