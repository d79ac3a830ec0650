package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type pollWorkerRepository struct {
	db *sql.DB
}

func NewPollWorkerRepository(db *sql.DB) ports.PollWorkerRepository {
	return &pollWorkerRepository{
		db: db,
	}
}

func (r *pollWorkerRepository) Save(ctx context.Context, worker *domain.PollWorker) error {
	query := `
		INSERT INTO poll_workers (id, session_id, name, registration, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, worker.ID, worker.SessionID, worker.Name, worker.Registration, worker.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll worker: %w", err)
	}
	return nil
}

func (r *pollWorkerRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error) {
	query := `
		SELECT id, session_id, name, registration, created_at
		FROM poll_workers
		WHERE session_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll workers: %w", err)
	}
	defer rows.Close()

	var workers []*domain.PollWorker
	for rows.Next() {
		var worker domain.PollWorker
		if err := rows.Scan(&worker.ID, &worker.SessionID, &worker.Name, &worker.Registration, &worker.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll worker: %w", err)
		}
		workers = append(workers, &worker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poll workers: %w", err)
	}
	return workers, nil
}
