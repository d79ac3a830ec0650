package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type authorizationService struct {
	sessionRepo   ports.SessionRepository
	candidateRepo ports.CandidateRepository
	permitRepo    ports.PermitRepository
	broadcaster   ports.EventBroadcaster
	logger        *slog.Logger
}

func NewAuthorizationService(
	sessionRepo ports.SessionRepository,
	candidateRepo ports.CandidateRepository,
	permitRepo ports.PermitRepository,
	broadcaster ports.EventBroadcaster,
	logger *slog.Logger,
) ports.AuthorizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authorizationService{
		sessionRepo:   sessionRepo,
		candidateRepo: candidateRepo,
		permitRepo:    permitRepo,
		broadcaster:   broadcaster,
		logger:        logger,
	}
}

func (s *authorizationService) IssuePermit(ctx context.Context, input ports.IssuePermitInput) (*ports.PermitReceipt, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotOpen
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Status != domain.SessionInProgress {
		return nil, domain.ErrSessionNotOpen
	}

	if strings.TrimSpace(input.Registration) == "" {
		return nil, domain.ErrInvalidRegistration
	}

	permit := &domain.VotePermit{
		ID:           uuid.New(),
		Token:        NewPermitToken(),
		SessionID:    input.SessionID,
		Registration: strings.TrimSpace(input.Registration),
		IssuedAt:     time.Now().UTC(),
	}

	// The store's (session_id, registration) uniqueness constraint is what
	// makes concurrent issuance for the same voter safe; a separate
	// existence check here would race.
	if err := s.permitRepo.Save(ctx, permit); err != nil {
		if errors.Is(err, domain.ErrRegistrationAlreadyUsed) {
			return nil, domain.ErrRegistrationAlreadyUsed
		}
		return nil, fmt.Errorf("failed to save permit: %w", err)
	}

	s.broadcaster.BroadcastToBooths(permit.SessionID, domain.NewPermitIssuedEvent(permit.Token, permit.IssuedAt))

	s.logger.Info("permit issued", "session_id", permit.SessionID, "permit_id", permit.ID)

	return &ports.PermitReceipt{Token: permit.Token, IssuedAt: permit.IssuedAt}, nil
}

func (s *authorizationService) CastVote(ctx context.Context, input ports.CastVoteInput) (*ports.VoteReceipt, error) {
	// Validated before any store access: a ballot either names one
	// candidate or is an explicit blank, never both, never neither.
	if input.NullVote == (input.CandidateID != nil) {
		return nil, domain.ErrAmbiguousVoteTarget
	}

	permit, err := s.permitRepo.GetByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrPermitNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up permit: %w", err)
	}
	if permit.SessionID != input.SessionID {
		return nil, domain.ErrInvalidToken
	}

	if input.CandidateID != nil {
		candidate, err := s.candidateRepo.GetByID(ctx, *input.CandidateID)
		if err != nil {
			if errors.Is(err, domain.ErrCandidateNotFound) {
				return nil, domain.ErrInvalidCandidate
			}
			return nil, fmt.Errorf("failed to look up candidate: %w", err)
		}
		if candidate.SessionID != permit.SessionID {
			return nil, domain.ErrInvalidCandidate
		}
	}

	vote, err := s.permitRepo.Consume(ctx, input.Token, input.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPermitAlreadyUsed):
			return nil, domain.ErrTokenAlreadyConsumed
		case errors.Is(err, domain.ErrPermitNotFound):
			return nil, domain.ErrInvalidToken
		default:
			return nil, fmt.Errorf("failed to consume permit: %w", err)
		}
	}

	// The vote is durable at this point; delivery is best-effort
	// notification, never part of the transactional contract.
	s.broadcaster.BroadcastToPollWorkers(vote.SessionID, domain.NewVoteRegisteredEvent(input.Token, vote.CreatedAt, vote.CandidateID))

	s.logger.Info("vote registered", "session_id", vote.SessionID, "vote_id", vote.ID, "null_vote", vote.CandidateID == nil)

	return &ports.VoteReceipt{ID: vote.ID, CandidateID: vote.CandidateID, CreatedAt: vote.CreatedAt}, nil
}
