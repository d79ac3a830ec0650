// Command migrations applies one SQL migration file by name, e.g.
// `migrations 000001_create_election_tables.up` before first boot or
// `...down` to roll it back.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const migrationsDir = "internal/adapters/repository/postgres/migrations"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if len(os.Args) < 2 {
		logger.Error("a migration name is required")
		os.Exit(1)
	}
	name := os.Args[1]

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	content, err := findMigration(migrationsDir, name)
	if err != nil {
		logger.Error("failed to load migration", "name", name, "error", err)
		os.Exit(1)
	}

	if _, err := db.Exec(string(content)); err != nil {
		logger.Error("failed to execute migration", "name", name, "error", err)
		os.Exit(1)
	}

	logger.Info("migration applied", "name", name)
}

func findMigration(dir, name string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), name+".sql") {
			return os.ReadFile(filepath.Join(dir, entry.Name()))
		}
	}

	return nil, fmt.Errorf("no migration file matches %q", name)
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
