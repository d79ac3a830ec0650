package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/adapters/broadcast"
	ws "github.com/vncsmyrnk/election/internal/adapters/handler/websocket"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	registry := broadcast.NewRegistry(nil)

	authSvc := services.NewAuthorizationService(store.Sessions(), store.Candidates(), store.Permits(), registry, nil)
	sessionSvc := services.NewSessionService(store.Sessions(), store.Results())
	candidateSvc := services.NewCandidateService(store.Sessions(), store.Candidates())
	pollWorkerSvc := services.NewPollWorkerService(store.Sessions(), store.PollWorkers())
	summarySvc := services.NewSummaryService(store.Sessions(), store.Results())

	router := NewHandler(
		NewSessionHandler(sessionSvc, summarySvc),
		NewCandidateHandler(candidateSvc),
		NewPollWorkerHandler(pollWorkerSvc),
		NewAuthorizationHandler(authSvc),
		ws.NewObserverHandler(authSvc, registry, nil),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, server *httptest.Server, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := server.Client().Post(server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createOpenSession(t *testing.T, server *httptest.Server, code string) domain.VotingSession {
	t.Helper()
	resp := postJSON(t, server, "/api/sessions", map[string]any{"code": code, "expected_votes": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[domain.VotingSession](t, resp)

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/start", session.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	return session
}

func TestSessionEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/sessions", map[string]any{"code": "2025.1", "expected_votes": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[domain.VotingSession](t, resp)
	assert.Equal(t, domain.SessionPlanned, session.Status)

	// Duplicate code conflicts.
	resp = postJSON(t, server, "/api/sessions", map[string]any{"code": "2025.1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Close before start is rejected.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/close", session.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/start", session.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	started := decode[domain.VotingSession](t, resp)
	assert.Equal(t, domain.SessionInProgress, started.Status)

	getResp, err := server.Client().Get(server.URL + fmt.Sprintf("/api/sessions/%s", session.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	overview := decode[domain.SessionOverview](t, getResp)
	assert.Equal(t, int64(0), overview.TotalVotes)
	assert.Equal(t, int64(10), overview.RemainingVotes)
}

func TestPermitAndVoteEndpoints(t *testing.T) {
	server := newTestServer(t)
	session := createOpenSession(t, server, "2025.1")

	resp := postJSON(t, server, fmt.Sprintf("/api/sessions/%s/candidates", session.ID), map[string]any{
		"name":              "Jordan",
		"registration":      "C-001",
		"commission_number": "01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	candidate := decode[domain.Candidate](t, resp)

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/permits", session.ID), map[string]any{"registration": "123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := decode[ports.PermitReceipt](t, resp)
	assert.NotEmpty(t, receipt.Token)

	// Second permit for the same voter conflicts.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/permits", session.ID), map[string]any{"registration": "123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Blank registration is a bad request.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/permits", session.ID), map[string]any{"registration": " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/votes", session.ID), map[string]any{
		"permit_token": receipt.Token,
		"candidate_id": candidate.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	vote := decode[ports.VoteReceipt](t, resp)
	require.NotNil(t, vote.CandidateID)
	assert.Equal(t, candidate.ID, *vote.CandidateID)

	// The permit is single use.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/votes", session.ID), map[string]any{
		"permit_token": receipt.Token,
		"candidate_id": candidate.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Unknown tokens are rejected.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/votes", session.ID), map[string]any{
		"permit_token": "bogus",
		"null_vote":    true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Naming a candidate and flagging a null vote at once is unprocessable.
	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/votes", session.ID), map[string]any{
		"permit_token": receipt.Token,
		"candidate_id": candidate.ID,
		"null_vote":    true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestPermitOnSessionNotOpen(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/sessions", map[string]any{"code": "2025.1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[domain.VotingSession](t, resp)

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/permits", session.ID), map[string]any{"registration": "123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestNullVoteAndResults(t *testing.T) {
	server := newTestServer(t)
	session := createOpenSession(t, server, "2025.1")

	resp := postJSON(t, server, fmt.Sprintf("/api/sessions/%s/permits", session.ID), map[string]any{"registration": "123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := decode[ports.PermitReceipt](t, resp)

	resp = postJSON(t, server, fmt.Sprintf("/api/sessions/%s/votes", session.ID), map[string]any{
		"permit_token": receipt.Token,
		"null_vote":    true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	vote := decode[ports.VoteReceipt](t, resp)
	assert.Nil(t, vote.CandidateID)

	getResp, err := server.Client().Get(server.URL + fmt.Sprintf("/api/sessions/%s/results", session.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	results := decode[domain.SessionResults](t, getResp)
	assert.Equal(t, int64(1), results.TotalVotes)
	assert.Equal(t, int64(1), results.BlankVotes)
}
