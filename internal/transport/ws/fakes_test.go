package ws

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

// fakeConn records delivered messages in order.
type fakeConn struct {
	mu      sync.Mutex
	msgs    []Message
	sendErr error
	closed  bool
}

func (c *fakeConn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *fakeConn) byType(typ string) []Message {
	var out []Message
	for _, m := range c.messages() {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var errConnGone = errors.New("connection gone")

// hub bundles the components most tests need.
type hub struct {
	registry *Registry
	rooms    *Rooms
	relay    *Relay
	presence *Presence
}

func newHub() *hub {
	registry := NewRegistry()
	rooms := NewRooms()
	relay := NewRelay(registry, rooms)
	return &hub{
		registry: registry,
		rooms:    rooms,
		relay:    relay,
		presence: NewPresence(registry, rooms, relay),
	}
}

func (h *hub) connect(t *testing.T) (domain.ConnectionID, *fakeConn) {
	t.Helper()
	c := &fakeConn{}
	return h.registry.Register(c), c
}

func waitRecv(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for collaborator call")
		return ""
	}
}
