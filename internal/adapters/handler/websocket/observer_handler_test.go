package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/adapters/broadcast"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

type wsFixture struct {
	store    *memory.Store
	registry *broadcast.Registry
	auth     ports.AuthorizationService
	server   *httptest.Server
	session  *domain.VotingSession
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()

	store := memory.NewStore()
	registry := broadcast.NewRegistry(nil)
	auth := services.NewAuthorizationService(store.Sessions(), store.Candidates(), store.Permits(), registry, nil)
	handler := NewObserverHandler(auth, registry, nil)

	r := chi.NewRouter()
	r.Get("/ws/sessions/{id}/booth", handler.BoothSocket)
	r.Get("/ws/sessions/{id}/pollworker", handler.PollWorkerSocket)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	session := &domain.VotingSession{
		ID:        uuid.New(),
		Code:      "2025.1",
		Status:    domain.SessionInProgress,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(context.Background(), session))

	return &wsFixture{
		store:    store,
		registry: registry,
		auth:     auth,
		server:   server,
		session:  session,
	}
}

func (f *wsFixture) dial(t *testing.T, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestBoothReceivesPermitIssuedEvents(t *testing.T) {
	f := newWSFixture(t)
	booth := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/booth")

	// Registration happens in the handler goroutine after the upgrade;
	// give it a moment before the broadcast.
	time.Sleep(100 * time.Millisecond)

	_, err := f.auth.IssuePermit(context.Background(), ports.IssuePermitInput{
		SessionID:    f.session.ID,
		Registration: "123",
	})
	require.NoError(t, err)

	var event domain.PermitIssuedEvent
	require.NoError(t, booth.ReadJSON(&event))
	assert.Equal(t, domain.EventPermitIssued, event.Type)
	assert.NotEmpty(t, event.Token)
	assert.NotEmpty(t, event.IssuedAt)
}

func TestBoothDisconnectDoesNotStallIssuance(t *testing.T) {
	f := newWSFixture(t)
	booth := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/booth")

	time.Sleep(100 * time.Millisecond)
	booth.Close()

	done := make(chan error, 1)
	go func() {
		_, err := f.auth.IssuePermit(context.Background(), ports.IssuePermitInput{
			SessionID:    f.session.ID,
			Registration: "123",
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(writeWait + 5*time.Second):
		t.Fatal("issuance blocked on a dead booth connection")
	}
}

func TestPollWorkerAuthorizeAction(t *testing.T) {
	f := newWSFixture(t)
	station := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/pollworker")

	require.NoError(t, station.WriteJSON(map[string]string{
		"action":       "authorize",
		"registration": "123",
	}))

	var reply struct {
		Type     string `json:"type"`
		Token    string `json:"token"`
		IssuedAt string `json:"issued_at"`
	}
	require.NoError(t, station.ReadJSON(&reply))
	assert.Equal(t, domain.EventAuthorized, reply.Type)
	assert.NotEmpty(t, reply.Token)

	permit, err := f.store.GetPermitByToken(context.Background(), reply.Token)
	require.NoError(t, err)
	assert.Equal(t, f.session.ID, permit.SessionID)
	assert.False(t, permit.Used)
}

func TestPollWorkerAuthorizeDuplicateRegistration(t *testing.T) {
	f := newWSFixture(t)
	station := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/pollworker")

	for i := 0; i < 2; i++ {
		require.NoError(t, station.WriteJSON(map[string]string{
			"action":       "authorize",
			"registration": "123",
		}))
	}

	var first struct {
		Type string `json:"type"`
	}
	require.NoError(t, station.ReadJSON(&first))
	assert.Equal(t, domain.EventAuthorized, first.Type)

	var second domain.ErrorEvent
	require.NoError(t, station.ReadJSON(&second))
	assert.Equal(t, domain.EventError, second.Type)
	assert.Equal(t, domain.ErrRegistrationAlreadyUsed.Error(), second.Detail)
}

func TestPollWorkerUnknownAction(t *testing.T) {
	f := newWSFixture(t)
	station := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/pollworker")

	require.NoError(t, station.WriteJSON(map[string]string{"action": "dance"}))

	var event domain.ErrorEvent
	require.NoError(t, station.ReadJSON(&event))
	assert.Equal(t, domain.EventError, event.Type)
	assert.Equal(t, "unknown action", event.Detail)
}

func TestPollWorkerReceivesVoteRegisteredEvents(t *testing.T) {
	f := newWSFixture(t)
	station := f.dial(t, "/ws/sessions/"+f.session.ID.String()+"/pollworker")

	require.NoError(t, station.WriteJSON(map[string]string{
		"action":       "authorize",
		"registration": "123",
	}))

	var reply struct {
		Token string `json:"token"`
	}
	require.NoError(t, station.ReadJSON(&reply))

	_, err := f.auth.CastVote(context.Background(), ports.CastVoteInput{
		SessionID: f.session.ID,
		Token:     reply.Token,
		NullVote:  true,
	})
	require.NoError(t, err)

	var event domain.VoteRegisteredEvent
	require.NoError(t, station.ReadJSON(&event))
	assert.Equal(t, domain.EventVoteRegistered, event.Type)
	assert.Equal(t, reply.Token, event.Token)
	assert.True(t, event.NullVote)
	assert.Nil(t, event.CandidateID)
}
