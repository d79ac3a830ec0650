package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type SessionRepository interface {
	Save(ctx context.Context, session *domain.VotingSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error)
	GetAll(ctx context.Context) ([]*domain.VotingSession, error)
	// TransitionStatus flips a session from one status to the next as a
	// conditional update: it succeeds only if the session is currently in
	// the "from" status, so concurrent transitions cannot skip or reverse.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SessionStatus, at time.Time) (*domain.VotingSession, error)
}

type CreateSessionInput struct {
	Code          string
	ExpectedVotes int
}

type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*domain.VotingSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SessionOverview, error)
	List(ctx context.Context) ([]*domain.SessionOverview, error)
	Start(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error)
	Close(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error)
}
