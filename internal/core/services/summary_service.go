package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type summaryService struct {
	sessionRepo ports.SessionRepository
	resultRepo  ports.ResultRepository
}

func NewSummaryService(sessionRepo ports.SessionRepository, resultRepo ports.ResultRepository) ports.SummaryService {
	return &summaryService{
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
	}
}

func (s *summaryService) Results(ctx context.Context, sessionID uuid.UUID) (*domain.SessionResults, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	results, err := s.resultRepo.SummarizeVotes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize votes for session %s: %w", sessionID, err)
	}
	return results, nil
}
