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

type pollWorkerService struct {
	sessionRepo ports.SessionRepository
	workerRepo  ports.PollWorkerRepository
}

func NewPollWorkerService(sessionRepo ports.SessionRepository, workerRepo ports.PollWorkerRepository) ports.PollWorkerService {
	return &pollWorkerService{
		sessionRepo: sessionRepo,
		workerRepo:  workerRepo,
	}
}

func (s *pollWorkerService) Create(ctx context.Context, input ports.CreatePollWorkerInput) (*domain.PollWorker, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(input.Registration) == "" {
		return nil, errors.New("registration is required")
	}

	if _, err := s.sessionRepo.GetByID(ctx, input.SessionID); err != nil {
		return nil, err
	}

	worker := &domain.PollWorker{
		ID:           uuid.New(),
		SessionID:    input.SessionID,
		Name:         strings.TrimSpace(input.Name),
		Registration: strings.TrimSpace(input.Registration),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.workerRepo.Save(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *pollWorkerService) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.workerRepo.ListBySession(ctx, sessionID)
}
