package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type PermitRepository interface {
	// Save inserts a new permit. The store enforces uniqueness of
	// (session_id, registration); a violation surfaces as
	// domain.ErrRegistrationAlreadyUsed.
	Save(ctx context.Context, permit *domain.VotePermit) error
	GetByToken(ctx context.Context, token string) (*domain.VotePermit, error)
	// Consume atomically marks the permit used and records the vote it
	// authorizes. At most one concurrent caller per token can succeed; the
	// rest get domain.ErrPermitAlreadyUsed.
	Consume(ctx context.Context, token string, candidateID *uuid.UUID) (*domain.Vote, error)
}
