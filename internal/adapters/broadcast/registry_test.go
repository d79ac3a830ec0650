package broadcast

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu     sync.Mutex
	events []any
	fail   bool
}

func (c *recordingConn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("send failed")
	}
	c.events = append(c.events, event)
	return nil
}

func (c *recordingConn) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestBroadcastToBooths(t *testing.T) {
	registry := NewRegistry(nil)
	sessionID := uuid.New()

	conns := []*recordingConn{{}, {}, {}}
	for _, conn := range conns {
		registry.RegisterBooth(sessionID, conn)
	}

	registry.BroadcastToBooths(sessionID, "event-1")

	for _, conn := range conns {
		assert.Equal(t, 1, conn.Count())
	}
}

func TestBroadcastSetsAreDisjoint(t *testing.T) {
	registry := NewRegistry(nil)
	sessionID := uuid.New()

	booth := &recordingConn{}
	station := &recordingConn{}
	registry.RegisterBooth(sessionID, booth)
	registry.RegisterPollWorker(sessionID, station)

	registry.BroadcastToBooths(sessionID, "for-booths")
	registry.BroadcastToPollWorkers(sessionID, "for-stations")

	assert.Equal(t, 1, booth.Count())
	assert.Equal(t, 1, station.Count())
}

func TestBroadcastIsScopedToSession(t *testing.T) {
	registry := NewRegistry(nil)

	conn := &recordingConn{}
	registry.RegisterBooth(uuid.New(), conn)

	registry.BroadcastToBooths(uuid.New(), "elsewhere")

	assert.Equal(t, 0, conn.Count())
}

// A connection whose send fails is pruned without any explicit disconnect
// notification and receives nothing afterwards.
func TestBroadcastPrunesDeadConnections(t *testing.T) {
	registry := NewRegistry(nil)
	sessionID := uuid.New()

	live := &recordingConn{}
	dead := &recordingConn{fail: true}
	registry.RegisterBooth(sessionID, live)
	registry.RegisterBooth(sessionID, dead)

	registry.BroadcastToBooths(sessionID, "first")
	require.Equal(t, 1, live.Count())

	dead.mu.Lock()
	dead.fail = false
	dead.mu.Unlock()

	registry.BroadcastToBooths(sessionID, "second")
	assert.Equal(t, 2, live.Count())
	assert.Equal(t, 0, dead.Count(), "pruned connection must not receive later events")
}

func TestUnregisterStopsDelivery(t *testing.T) {
	registry := NewRegistry(nil)
	sessionID := uuid.New()

	conn := &recordingConn{}
	registry.RegisterPollWorker(sessionID, conn)
	registry.BroadcastToPollWorkers(sessionID, "one")

	registry.UnregisterPollWorker(sessionID, conn)
	registry.BroadcastToPollWorkers(sessionID, "two")

	assert.Equal(t, 1, conn.Count())
}

// Registration and broadcast race freely; run with -race.
func TestConcurrentRegisterAndBroadcast(t *testing.T) {
	registry := NewRegistry(nil)
	sessionID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn := &recordingConn{}
			registry.RegisterBooth(sessionID, conn)
			registry.UnregisterBooth(sessionID, conn)
		}()
		go func() {
			defer wg.Done()
			registry.BroadcastToBooths(sessionID, "tick")
		}()
	}
	wg.Wait()
}
