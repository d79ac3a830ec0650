package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{
		db: db,
	}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, session_id, name, registration, commission_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		candidate.ID, candidate.SessionID, candidate.Name,
		candidate.Registration, candidate.CommissionNumber, candidate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `
		SELECT id, session_id, name, registration, commission_number, created_at
		FROM candidates
		WHERE id = $1
	`
	var candidate domain.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&candidate.ID, &candidate.SessionID, &candidate.Name,
		&candidate.Registration, &candidate.CommissionNumber, &candidate.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error) {
	query := `
		SELECT id, session_id, name, registration, commission_number, created_at
		FROM candidates
		WHERE session_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		if err := rows.Scan(
			&candidate.ID, &candidate.SessionID, &candidate.Name,
			&candidate.Registration, &candidate.CommissionNumber, &candidate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, &candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}
