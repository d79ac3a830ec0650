// Package websocket attaches booth and poll-worker observer connections to
// a session's broadcast channel. The handlers own the connection lifecycle;
// the registry only sees opaque send-capable handles.
package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type ObserverHandler struct {
	auth        ports.AuthorizationService
	broadcaster ports.EventBroadcaster
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewObserverHandler(auth ports.AuthorizationService, broadcaster ports.EventBroadcaster, logger *slog.Logger) *ObserverHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObserverHandler{
		auth:        auth,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// writeWait bounds how long a single event write may block on a slow or
// wedged peer before the connection is treated as dead.
const writeWait = 10 * time.Second

// observerConn serializes writes; gorilla connections allow only one
// concurrent writer.
type observerConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *observerConn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(event)
}

// BoothSocket handles GET /ws/sessions/{id}/booth. A booth terminal stays
// attached until it disconnects and receives permit_issued events.
func (h *ObserverHandler) BoothSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("booth upgrade failed", "session_id", sessionID, "error", err)
		return
	}
	defer ws.Close()

	conn := &observerConn{ws: ws}
	h.broadcaster.RegisterBooth(sessionID, conn)
	defer h.broadcaster.UnregisterBooth(sessionID, conn)

	// Drain inbound frames until the peer goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

type pollWorkerMessage struct {
	Action       string `json:"action"`
	Registration string `json:"registration"`
}

type authorizedReply struct {
	Type     string `json:"type"`
	Token    string `json:"token"`
	IssuedAt string `json:"issued_at"`
}

// PollWorkerSocket handles GET /ws/sessions/{id}/pollworker. The station
// receives vote_registered events and may push authorize actions to issue
// a permit without a separate HTTP round trip.
func (h *ObserverHandler) PollWorkerSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("poll worker upgrade failed", "session_id", sessionID, "error", err)
		return
	}
	defer ws.Close()

	conn := &observerConn{ws: ws}
	h.broadcaster.RegisterPollWorker(sessionID, conn)
	defer h.broadcaster.UnregisterPollWorker(sessionID, conn)

	for {
		var msg pollWorkerMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("poll worker connection dropped", "session_id", sessionID, "error", err)
			}
			return
		}

		switch msg.Action {
		case "authorize":
			h.authorize(r.Context(), sessionID, msg.Registration, conn)
		default:
			_ = conn.Send(domain.NewErrorEvent("unknown action"))
		}
	}
}

func (h *ObserverHandler) authorize(ctx context.Context, sessionID uuid.UUID, registration string, conn *observerConn) {
	receipt, err := h.auth.IssuePermit(ctx, ports.IssuePermitInput{
		SessionID:    sessionID,
		Registration: registration,
	})
	if err != nil {
		detail := "failed to issue permit"
		switch {
		case errors.Is(err, domain.ErrSessionNotOpen),
			errors.Is(err, domain.ErrInvalidRegistration),
			errors.Is(err, domain.ErrRegistrationAlreadyUsed):
			detail = err.Error()
		default:
			h.logger.Error("permit issuance failed over socket", "session_id", sessionID, "error", err)
		}
		_ = conn.Send(domain.NewErrorEvent(detail))
		return
	}

	_ = conn.Send(authorizedReply{
		Type:     domain.EventAuthorized,
		Token:    receipt.Token,
		IssuedAt: receipt.IssuedAt.UTC().Format(time.RFC3339),
	})
}
