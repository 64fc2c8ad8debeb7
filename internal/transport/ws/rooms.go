package ws

import (
	"sync"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

// Rooms maps roomID -> set of connection ids. A room exists iff its set is
// non-empty; the last Leave drops the map entry. The reverse index makes
// LeaveAll proportional to the rooms the connection is actually in.
type Rooms struct {
	mu      sync.RWMutex
	members map[string]map[domain.ConnectionID]struct{}
	joined  map[domain.ConnectionID]map[string]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[string]map[domain.ConnectionID]struct{}),
		joined:  make(map[domain.ConnectionID]map[string]struct{}),
	}
}

// Join adds the connection to the room. Re-joining is a no-op.
func (r *Rooms) Join(roomID string, connID domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ms, ok := r.members[roomID]
	if !ok {
		ms = make(map[domain.ConnectionID]struct{})
		r.members[roomID] = ms
	}
	ms[connID] = struct{}{}

	rs, ok := r.joined[connID]
	if !ok {
		rs = make(map[string]struct{})
		r.joined[connID] = rs
	}
	rs[roomID] = struct{}{}
}

// Leave removes the connection from the room, dropping the room when empty.
func (r *Rooms) Leave(roomID string, connID domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leaveLocked(roomID, connID)
}

func (r *Rooms) leaveLocked(roomID string, connID domain.ConnectionID) {
	if ms, ok := r.members[roomID]; ok {
		delete(ms, connID)
		if len(ms) == 0 {
			delete(r.members, roomID)
		}
	}
	if rs, ok := r.joined[connID]; ok {
		delete(rs, roomID)
		if len(rs) == 0 {
			delete(r.joined, connID)
		}
	}
}

// LeaveAll removes the connection from every room it belongs to and returns
// the rooms it left. Called once per disconnect; a second call returns nil.
func (r *Rooms) LeaveAll(connID domain.ConnectionID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.joined[connID]
	if !ok {
		return nil
	}

	left := make([]string, 0, len(rs))
	for roomID := range rs {
		left = append(left, roomID)
		r.leaveLocked(roomID, connID)
	}
	return left
}

// Members returns a copy of the room's membership at call time.
func (r *Rooms) Members(roomID string) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ms, ok := r.members[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.ConnectionID, 0, len(ms))
	for id := range ms {
		out = append(out, id)
	}
	return out
}

// MembersExcept returns everyone in the room except connID.
func (r *Rooms) MembersExcept(roomID string, connID domain.ConnectionID) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ms, ok := r.members[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.ConnectionID, 0, len(ms))
	for id := range ms {
		if id != connID {
			out = append(out, id)
		}
	}
	return out
}

// RoomsOf returns the rooms the connection is currently in.
func (r *Rooms) RoomsOf(connID domain.ConnectionID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.joined[connID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rs))
	for roomID := range rs {
		out = append(out, roomID)
	}
	return out
}
