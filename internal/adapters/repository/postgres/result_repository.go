package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) CountVotes(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE session_id = $1`, sessionID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return total, nil
}

func (r *resultRepository) SummarizeVotes(ctx context.Context, sessionID uuid.UUID) (*domain.SessionResults, error) {
	query := `
		SELECT c.id, c.name, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		WHERE c.session_id = $1
		GROUP BY c.id, c.name
		ORDER BY COUNT(v.id) DESC, c.name
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize votes: %w", err)
	}
	defer rows.Close()

	results := &domain.SessionResults{SessionID: sessionID}
	for rows.Next() {
		var item domain.CandidateResult
		if err := rows.Scan(&item.CandidateID, &item.CandidateName, &item.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results.Candidates = append(results.Candidates, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	blankQuery := `SELECT COUNT(*) FROM votes WHERE session_id = $1 AND candidate_id IS NULL`
	if err := r.db.QueryRowContext(ctx, blankQuery, sessionID).Scan(&results.BlankVotes); err != nil {
		return nil, fmt.Errorf("failed to count blank votes: %w", err)
	}

	total, err := r.CountVotes(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	results.TotalVotes = total

	return results, nil
}
