package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.VotingSession) error {
	query := `
		INSERT INTO voting_sessions (id, code, expected_votes, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.Code, session.ExpectedVotes, session.Status, session.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "voting_sessions_code_key") {
			return domain.ErrSessionCodeTaken
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error) {
	query := `
		SELECT id, code, expected_votes, status, start_time, end_time, created_at
		FROM voting_sessions
		WHERE id = $1
	`
	var session domain.VotingSession
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Code, &session.ExpectedVotes, &session.Status,
		&session.StartTime, &session.EndTime, &session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) GetAll(ctx context.Context) ([]*domain.VotingSession, error) {
	query := `
		SELECT id, code, expected_votes, status, start_time, end_time, created_at
		FROM voting_sessions
		ORDER BY code
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.VotingSession
	for rows.Next() {
		var session domain.VotingSession
		if err := rows.Scan(
			&session.ID, &session.Code, &session.ExpectedVotes, &session.Status,
			&session.StartTime, &session.EndTime, &session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// TransitionStatus is a conditional update: the row is only touched when it
// still holds the expected "from" status, so concurrent transitions cannot
// skip or reverse a step.
func (r *sessionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SessionStatus, at time.Time) (*domain.VotingSession, error) {
	timeColumn := "start_time"
	if to == domain.SessionClosed {
		timeColumn = "end_time"
	}

	query := fmt.Sprintf(`
		UPDATE voting_sessions
		SET status = $1, %s = $2
		WHERE id = $3 AND status = $4
		RETURNING id, code, expected_votes, status, start_time, end_time, created_at
	`, timeColumn)

	var session domain.VotingSession
	err := r.db.QueryRowContext(ctx, query, to, at, id, from).Scan(
		&session.ID, &session.Code, &session.ExpectedVotes, &session.Status,
		&session.StartTime, &session.EndTime, &session.CreatedAt,
	)
	if err == nil {
		return &session, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to transition session status: %w", err)
	}

	// No row matched: distinguish a missing session from a wrong status.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrInvalidStatusTransition
}
