package ws

import (
	"log/slog"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

// Relay fans payloads out to room members. Recipient sets are snapshotted
// under the room lock; the actual sends happen with no lock held. Delivery is
// best-effort: a connection mid-disconnect may miss the final broadcast.
type Relay struct {
	registry *Registry
	rooms    *Rooms

	// dropConn handles a failed send as an implicit disconnect. Defaults to
	// closing the transport, which funnels the connection into the same
	// cleanup path as an explicit close.
	dropConn func(domain.ConnectionID)
}

func NewRelay(registry *Registry, rooms *Rooms) *Relay {
	r := &Relay{registry: registry, rooms: rooms}
	r.dropConn = func(id domain.ConnectionID) {
		if c, ok := registry.Conn(id); ok {
			_ = c.Close()
		}
	}
	return r
}

// SendToRoom delivers to all current members, the sender included if it is a
// member. Every client renders from the one event stream, no local echo.
func (r *Relay) SendToRoom(roomID string, msg Message) {
	r.deliver(r.rooms.Members(roomID), msg)
}

// SendToRoomExcept delivers to all current members but connID.
func (r *Relay) SendToRoomExcept(roomID string, connID domain.ConnectionID, msg Message) {
	r.deliver(r.rooms.MembersExcept(roomID, connID), msg)
}

// SendToUser delivers to every connection in the user's personal room, so a
// user open on two devices receives the event on both.
func (r *Relay) SendToUser(userID string, msg Message) {
	r.deliver(r.rooms.Members(userID), msg)
}

// SendTo delivers to a single connection.
func (r *Relay) SendTo(connID domain.ConnectionID, msg Message) {
	r.deliver([]domain.ConnectionID{connID}, msg)
}

func (r *Relay) deliver(ids []domain.ConnectionID, msg Message) {
	for _, id := range ids {
		c, ok := r.registry.Conn(id)
		if !ok {
			continue // disconnected between snapshot and send
		}
		if err := c.Send(msg); err != nil {
			slog.Debug("ws send failed, dropping connection", "conn", id, "type", msg.Type, "err", err)
			r.dropConn(id)
		}
	}
}
