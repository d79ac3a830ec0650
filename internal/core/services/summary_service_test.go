package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

func TestSummaryResults(t *testing.T) {
	store := memory.NewStore()
	service := NewSummaryService(store.Sessions(), store.Results())
	ctx := context.Background()

	session := &domain.VotingSession{ID: uuid.New(), Code: "2025.1", Status: domain.SessionInProgress}
	require.NoError(t, store.Save(ctx, session))

	first := &domain.Candidate{ID: uuid.New(), SessionID: session.ID, Name: "Alex"}
	second := &domain.Candidate{ID: uuid.New(), SessionID: session.ID, Name: "Sam"}
	require.NoError(t, store.SaveCandidate(ctx, first))
	require.NoError(t, store.SaveCandidate(ctx, second))

	cast := func(registration string, candidateID *uuid.UUID) {
		permit := &domain.VotePermit{ID: uuid.New(), Token: NewPermitToken(), SessionID: session.ID, Registration: registration}
		require.NoError(t, store.SavePermit(ctx, permit))
		_, err := store.ConsumePermit(ctx, permit.Token, candidateID)
		require.NoError(t, err)
	}

	cast("1", &first.ID)
	cast("2", &first.ID)
	cast("3", &second.ID)
	cast("4", nil)

	results, err := service.Results(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), results.TotalVotes)
	assert.Equal(t, int64(1), results.BlankVotes)
	require.Len(t, results.Candidates, 2)
	assert.Equal(t, first.ID, results.Candidates[0].CandidateID)
	assert.Equal(t, int64(2), results.Candidates[0].TotalVotes)
	assert.Equal(t, second.ID, results.Candidates[1].CandidateID)
	assert.Equal(t, int64(1), results.Candidates[1].TotalVotes)
}

func TestSummaryResultsUnknownSession(t *testing.T) {
	store := memory.NewStore()
	service := NewSummaryService(store.Sessions(), store.Results())

	_, err := service.Results(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
