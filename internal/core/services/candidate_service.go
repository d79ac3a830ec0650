package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type candidateService struct {
	sessionRepo   ports.SessionRepository
	candidateRepo ports.CandidateRepository
}

func NewCandidateService(sessionRepo ports.SessionRepository, candidateRepo ports.CandidateRepository) ports.CandidateService {
	return &candidateService{
		sessionRepo:   sessionRepo,
		candidateRepo: candidateRepo,
	}
}

func (s *candidateService) Create(ctx context.Context, input ports.CreateCandidateInput) (*domain.Candidate, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(input.Registration) == "" {
		return nil, errors.New("registration is required")
	}

	if _, err := s.sessionRepo.GetByID(ctx, input.SessionID); err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		ID:               uuid.New(),
		SessionID:        input.SessionID,
		Name:             strings.TrimSpace(input.Name),
		Registration:     strings.TrimSpace(input.Registration),
		CommissionNumber: strings.TrimSpace(input.CommissionNumber),
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.candidateRepo.Save(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *candidateService) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.candidateRepo.ListBySession(ctx, sessionID)
}
