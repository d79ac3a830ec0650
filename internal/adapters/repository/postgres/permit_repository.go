package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type permitRepository struct {
	db *sql.DB
}

func NewPermitRepository(db *sql.DB) ports.PermitRepository {
	return &permitRepository{
		db: db,
	}
}

func (r *permitRepository) Save(ctx context.Context, permit *domain.VotePermit) error {
	query := `
		INSERT INTO vote_permits (id, token, session_id, registration, issued_at, used)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`
	_, err := r.db.ExecContext(ctx, query, permit.ID, permit.Token, permit.SessionID, permit.Registration, permit.IssuedAt)
	if err != nil {
		if isUniqueViolation(err, "vote_permits_session_registration_key") {
			return domain.ErrRegistrationAlreadyUsed
		}
		return fmt.Errorf("failed to insert permit: %w", err)
	}
	return nil
}

func (r *permitRepository) GetByToken(ctx context.Context, token string) (*domain.VotePermit, error) {
	query := `
		SELECT id, token, session_id, registration, issued_at, used, used_at
		FROM vote_permits
		WHERE token = $1
	`
	var permit domain.VotePermit
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&permit.ID, &permit.Token, &permit.SessionID, &permit.Registration,
		&permit.IssuedAt, &permit.Used, &permit.UsedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPermitNotFound
		}
		return nil, fmt.Errorf("failed to get permit: %w", err)
	}
	return &permit, nil
}

// Consume flips the permit's used flag and records the vote in one
// transaction. The conditional UPDATE acts as a compare-and-swap on the
// used flag: of any number of concurrent calls for the same token, exactly
// one sees a row and inserts a vote.
func (r *permitRepository) Consume(ctx context.Context, token string, candidateID *uuid.UUID) (*domain.Vote, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	consumeQuery := `
		UPDATE vote_permits
		SET used = TRUE, used_at = NOW()
		WHERE token = $1 AND used = FALSE
		RETURNING id, session_id, used_at
	`
	var permitID, sessionID uuid.UUID
	var usedAt sql.NullTime
	err = tx.QueryRowContext(ctx, consumeQuery, token).Scan(&permitID, &sessionID, &usedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to consume permit: %w", err)
		}
		// The permit was either never issued or already used.
		var used bool
		checkErr := r.db.QueryRowContext(ctx, `SELECT used FROM vote_permits WHERE token = $1`, token).Scan(&used)
		if checkErr == sql.ErrNoRows {
			return nil, domain.ErrPermitNotFound
		}
		if checkErr != nil {
			return nil, fmt.Errorf("failed to check permit state: %w", checkErr)
		}
		return nil, domain.ErrPermitAlreadyUsed
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		SessionID:   sessionID,
		CandidateID: candidateID,
		PermitID:    permitID,
	}

	insertQuery := `
		INSERT INTO votes (id, session_id, candidate_id, permit_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery, vote.ID, vote.SessionID, vote.CandidateID, vote.PermitID).Scan(&vote.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	return vote, nil
}
