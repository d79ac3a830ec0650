package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Per-port views over the shared store, so one Store can stand in for every
// repository the services need.

func (s *Store) Sessions() ports.SessionRepository { return sessionStore{s} }

func (s *Store) Candidates() ports.CandidateRepository { return candidateStore{s} }

func (s *Store) PollWorkers() ports.PollWorkerRepository { return pollWorkerStore{s} }

func (s *Store) Permits() ports.PermitRepository { return permitStore{s} }

func (s *Store) Results() ports.ResultRepository { return resultStore{s} }

type sessionStore struct{ *Store }

type candidateStore struct{ *Store }

func (c candidateStore) Save(ctx context.Context, candidate *domain.Candidate) error {
	return c.SaveCandidate(ctx, candidate)
}

func (c candidateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return c.GetCandidateByID(ctx, id)
}

func (c candidateStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error) {
	return c.ListCandidatesBySession(ctx, sessionID)
}

type pollWorkerStore struct{ *Store }

func (p pollWorkerStore) Save(ctx context.Context, worker *domain.PollWorker) error {
	return p.SavePollWorker(ctx, worker)
}

func (p pollWorkerStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error) {
	return p.ListPollWorkersBySession(ctx, sessionID)
}

type permitStore struct{ *Store }

func (p permitStore) Save(ctx context.Context, permit *domain.VotePermit) error {
	return p.SavePermit(ctx, permit)
}

func (p permitStore) GetByToken(ctx context.Context, token string) (*domain.VotePermit, error) {
	return p.GetPermitByToken(ctx, token)
}

func (p permitStore) Consume(ctx context.Context, token string, candidateID *uuid.UUID) (*domain.Vote, error) {
	return p.ConsumePermit(ctx, token, candidateID)
}

type resultStore struct{ *Store }

var (
	_ ports.SessionRepository    = sessionStore{}
	_ ports.CandidateRepository  = candidateStore{}
	_ ports.PollWorkerRepository = pollWorkerStore{}
	_ ports.PermitRepository     = permitStore{}
	_ ports.ResultRepository     = resultStore{}
)
