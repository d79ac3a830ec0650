package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type CandidateRepository interface {
	Save(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error)
}

type PollWorkerRepository interface {
	Save(ctx context.Context, worker *domain.PollWorker) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error)
}

type CreateCandidateInput struct {
	SessionID        uuid.UUID
	Name             string
	Registration     string
	CommissionNumber string
}

type CandidateService interface {
	Create(ctx context.Context, input CreateCandidateInput) (*domain.Candidate, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error)
}

type CreatePollWorkerInput struct {
	SessionID    uuid.UUID
	Name         string
	Registration string
}

type PollWorkerService interface {
	Create(ctx context.Context, input CreatePollWorkerInput) (*domain.PollWorker, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error)
}
