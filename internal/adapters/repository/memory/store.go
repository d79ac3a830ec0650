// Package memory is an in-memory implementation of the repository ports.
// It backs the service unit tests and mirrors the store-level atomicity the
// postgres adapter gets from constraints and conditional updates: all
// check-and-set sequences run under one mutex.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type Store struct {
	mu sync.Mutex

	sessions    map[uuid.UUID]domain.VotingSession
	candidates  map[uuid.UUID]domain.Candidate
	pollWorkers map[uuid.UUID]domain.PollWorker
	permits     map[uuid.UUID]domain.VotePermit
	permitByTok map[string]uuid.UUID
	votes       map[uuid.UUID]domain.Vote
}

func NewStore() *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]domain.VotingSession),
		candidates:  make(map[uuid.UUID]domain.Candidate),
		pollWorkers: make(map[uuid.UUID]domain.PollWorker),
		permits:     make(map[uuid.UUID]domain.VotePermit),
		permitByTok: make(map[string]uuid.UUID),
		votes:       make(map[uuid.UUID]domain.Vote),
	}
}

func (s *Store) Save(ctx context.Context, session *domain.VotingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.sessions {
		if existing.Code == session.Code {
			return domain.ErrSessionCodeTaken
		}
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Store) GetAll(ctx context.Context) ([]*domain.VotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]*domain.VotingSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		copied := session
		sessions = append(sessions, &copied)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Code < sessions[j].Code })
	return sessions, nil
}

func (s *Store) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SessionStatus, at time.Time) (*domain.VotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != from {
		return nil, domain.ErrInvalidStatusTransition
	}
	session.Status = to
	if to == domain.SessionClosed {
		session.EndTime = &at
	} else {
		session.StartTime = &at
	}
	s.sessions[id] = session
	return &session, nil
}

func (s *Store) SaveCandidate(ctx context.Context, candidate *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = *candidate
	return nil
}

func (s *Store) GetCandidateByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	return &candidate, nil
}

func (s *Store) ListCandidatesBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []*domain.Candidate
	for _, candidate := range s.candidates {
		if candidate.SessionID == sessionID {
			copied := candidate
			candidates = append(candidates, &copied)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates, nil
}

func (s *Store) SavePollWorker(ctx context.Context, worker *domain.PollWorker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollWorkers[worker.ID] = *worker
	return nil
}

func (s *Store) ListPollWorkersBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PollWorker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var workers []*domain.PollWorker
	for _, worker := range s.pollWorkers {
		if worker.SessionID == sessionID {
			copied := worker
			workers = append(workers, &copied)
		}
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].Name < workers[j].Name })
	return workers, nil
}

func (s *Store) SavePermit(ctx context.Context, permit *domain.VotePermit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.permits {
		if existing.SessionID == permit.SessionID && existing.Registration == permit.Registration {
			return domain.ErrRegistrationAlreadyUsed
		}
	}
	s.permits[permit.ID] = *permit
	s.permitByTok[permit.Token] = permit.ID
	return nil
}

func (s *Store) GetPermitByToken(ctx context.Context, token string) (*domain.VotePermit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.permitByTok[token]
	if !ok {
		return nil, domain.ErrPermitNotFound
	}
	permit := s.permits[id]
	return &permit, nil
}

func (s *Store) ConsumePermit(ctx context.Context, token string, candidateID *uuid.UUID) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.permitByTok[token]
	if !ok {
		return nil, domain.ErrPermitNotFound
	}
	permit := s.permits[id]
	if permit.Used {
		return nil, domain.ErrPermitAlreadyUsed
	}

	now := time.Now().UTC()
	permit.Used = true
	permit.UsedAt = &now
	s.permits[id] = permit

	vote := domain.Vote{
		ID:          uuid.New(),
		SessionID:   permit.SessionID,
		CandidateID: candidateID,
		PermitID:    permit.ID,
		CreatedAt:   now,
	}
	s.votes[vote.ID] = vote
	return &vote, nil
}

func (s *Store) CountVotes(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, vote := range s.votes {
		if vote.SessionID == sessionID {
			total++
		}
	}
	return total, nil
}

func (s *Store) SummarizeVotes(ctx context.Context, sessionID uuid.UUID) (*domain.SessionResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := &domain.SessionResults{SessionID: sessionID}
	counts := make(map[uuid.UUID]int64)
	for _, vote := range s.votes {
		if vote.SessionID != sessionID {
			continue
		}
		results.TotalVotes++
		if vote.CandidateID == nil {
			results.BlankVotes++
			continue
		}
		counts[*vote.CandidateID]++
	}

	for _, candidate := range s.candidates {
		if candidate.SessionID != sessionID {
			continue
		}
		results.Candidates = append(results.Candidates, domain.CandidateResult{
			CandidateID:   candidate.ID,
			CandidateName: candidate.Name,
			TotalVotes:    counts[candidate.ID],
		})
	}
	sort.Slice(results.Candidates, func(i, j int) bool {
		if results.Candidates[i].TotalVotes != results.Candidates[j].TotalVotes {
			return results.Candidates[i].TotalVotes > results.Candidates[j].TotalVotes
		}
		return results.Candidates[i].CandidateName < results.Candidates[j].CandidateName
	})

	return results, nil
}
