package ws

import (
	"github.com/cwrk-planet/signaling-service/internal/domain"
)

// Presence announces arrivals and departures and answers "who is here".
type Presence struct {
	registry *Registry
	rooms    *Rooms
	relay    *Relay
}

func NewPresence(registry *Registry, rooms *Rooms, relay *Relay) *Presence {
	return &Presence{registry: registry, rooms: rooms, relay: relay}
}

// HandleJoin processes a join-room event. The snapshot of pre-existing peers
// goes to the joiner before anyone observes the join, so the joiner's view is
// always "everyone who was already there before I arrived".
func (p *Presence) HandleJoin(connID domain.ConnectionID, roomID, userID, userName string) {
	p.registry.SetIdentity(connID, userID, userName)
	p.rooms.Join(roomID, connID)

	p.relay.SendTo(connID, Message{
		Type:    TypeExistingUsers,
		Payload: p.snapshot(roomID, connID),
	})

	p.relay.SendToRoomExcept(roomID, connID, Message{
		Type:    TypeUserConnected,
		Payload: UserInfo{UserID: userID, UserName: userName},
	})
}

// snapshot lists the identified members of the room other than connID. A
// member that joined but has not identified yet is invisible, never a ghost
// peer. Always non-nil so the client gets [] rather than null.
func (p *Presence) snapshot(roomID string, connID domain.ConnectionID) []UserInfo {
	members := p.rooms.MembersExcept(roomID, connID)

	out := make([]UserInfo, 0, len(members))
	for _, id := range members {
		identity, ok := p.registry.Identity(id)
		if !ok || !identity.Identified() {
			continue
		}
		out = append(out, UserInfo{UserID: identity.UserID, UserName: identity.UserName})
	}
	return out
}

// HandleDisconnect runs the one cleanup pass for a closed connection:
// registry entry out, every membership out, a departure notice per room the
// connection was in. Safe to call more than once; only the first call finds
// the registry entry, so duplicate disconnect signals broadcast nothing.
func (p *Presence) HandleDisconnect(connID domain.ConnectionID) {
	identity, ok := p.registry.Unregister(connID)
	left := p.rooms.LeaveAll(connID)
	if !ok || !identity.Identified() {
		return
	}

	for _, roomID := range left {
		p.relay.SendToRoom(roomID, Message{
			Type:    TypeUserDisconnected,
			Payload: UserDisconnectedPayload{UserID: identity.UserID},
		})
	}
}
