// Package broadcast holds the process-local, per-session registry of live
// observer connections. Registries are created lazily and live for the
// process lifetime; permits and votes survive a restart in the store, but
// undelivered notifications do not.
package broadcast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type channel struct {
	mu          sync.Mutex
	booths      map[ports.ObserverConn]struct{}
	pollWorkers map[ports.ObserverConn]struct{}
}

func newChannel() *channel {
	return &channel{
		booths:      make(map[ports.ObserverConn]struct{}),
		pollWorkers: make(map[ports.ObserverConn]struct{}),
	}
}

type Registry struct {
	mu       sync.Mutex
	channels map[uuid.UUID]*channel
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		channels: make(map[uuid.UUID]*channel),
		logger:   logger,
	}
}

func (r *Registry) channelFor(sessionID uuid.UUID) *channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.channels[sessionID]
	if !ok {
		ch = newChannel()
		r.channels[sessionID] = ch
	}
	return ch
}

func (r *Registry) RegisterBooth(sessionID uuid.UUID, conn ports.ObserverConn) {
	ch := r.channelFor(sessionID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.booths[conn] = struct{}{}
}

func (r *Registry) UnregisterBooth(sessionID uuid.UUID, conn ports.ObserverConn) {
	ch := r.channelFor(sessionID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.booths, conn)
}

func (r *Registry) RegisterPollWorker(sessionID uuid.UUID, conn ports.ObserverConn) {
	ch := r.channelFor(sessionID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.pollWorkers[conn] = struct{}{}
}

func (r *Registry) UnregisterPollWorker(sessionID uuid.UUID, conn ports.ObserverConn) {
	ch := r.channelFor(sessionID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.pollWorkers, conn)
}

func (r *Registry) BroadcastToBooths(sessionID uuid.UUID, event any) {
	ch := r.channelFor(sessionID)
	r.deliver(sessionID, ch, ch.booths, event)
}

func (r *Registry) BroadcastToPollWorkers(sessionID uuid.UUID, event any) {
	ch := r.channelFor(sessionID)
	r.deliver(sessionID, ch, ch.pollWorkers, event)
}

// deliver snapshots the membership set under the lock and sends outside it,
// so a slow or dead connection never blocks registration. Connections whose
// send fails are dropped from the set.
func (r *Registry) deliver(sessionID uuid.UUID, ch *channel, set map[ports.ObserverConn]struct{}, event any) {
	ch.mu.Lock()
	conns := make([]ports.ObserverConn, 0, len(set))
	for conn := range set {
		conns = append(conns, conn)
	}
	ch.mu.Unlock()

	for _, conn := range conns {
		if err := conn.Send(event); err != nil {
			r.logger.Warn("dropping dead observer connection", "session_id", sessionID, "error", err)
			ch.mu.Lock()
			delete(set, conn)
			ch.mu.Unlock()
		}
	}
}

var _ ports.EventBroadcaster = (*Registry)(nil)
