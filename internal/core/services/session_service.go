package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type sessionService struct {
	sessionRepo ports.SessionRepository
	resultRepo  ports.ResultRepository
}

func NewSessionService(sessionRepo ports.SessionRepository, resultRepo ports.ResultRepository) ports.SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
	}
}

func (s *sessionService) Create(ctx context.Context, input ports.CreateSessionInput) (*domain.VotingSession, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, errors.New("code is required")
	}
	if input.ExpectedVotes < 0 {
		return nil, errors.New("expected_votes must not be negative")
	}

	session := &domain.VotingSession{
		ID:            uuid.New(),
		Code:          code,
		ExpectedVotes: input.ExpectedVotes,
		Status:        domain.SessionPlanned,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.SessionOverview, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.overview(ctx, session)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.SessionOverview, error) {
	sessions, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]*domain.SessionOverview, 0, len(sessions))
	for _, session := range sessions {
		overview, err := s.overview(ctx, session)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

func (s *sessionService) Start(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error) {
	return s.sessionRepo.TransitionStatus(ctx, id, domain.SessionPlanned, domain.SessionInProgress, time.Now().UTC())
}

func (s *sessionService) Close(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error) {
	return s.sessionRepo.TransitionStatus(ctx, id, domain.SessionInProgress, domain.SessionClosed, time.Now().UTC())
}

func (s *sessionService) overview(ctx context.Context, session *domain.VotingSession) (*domain.SessionOverview, error) {
	total, err := s.resultRepo.CountVotes(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	remaining := int64(session.ExpectedVotes) - total
	if remaining < 0 {
		remaining = 0
	}

	return &domain.SessionOverview{
		VotingSession:  *session,
		TotalVotes:     total,
		RemainingVotes: remaining,
	}, nil
}
