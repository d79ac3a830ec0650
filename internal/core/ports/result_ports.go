package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type ResultRepository interface {
	CountVotes(ctx context.Context, sessionID uuid.UUID) (int64, error)
	SummarizeVotes(ctx context.Context, sessionID uuid.UUID) (*domain.SessionResults, error)
}

type SummaryService interface {
	Results(ctx context.Context, sessionID uuid.UUID) (*domain.SessionResults, error)
}
