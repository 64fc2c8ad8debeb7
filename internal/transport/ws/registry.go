package ws

import (
	"sync"

	"github.com/cwrk-planet/signaling-service/internal/domain"

	"github.com/google/uuid"
)

// Conn is the transport seen by the hub components. The concrete wsConn
// serializes writes; tests substitute a fake.
type Conn interface {
	Send(msg Message) error
	Close() error
}

// Registry is the single owner of live connections and their identity
// attributes. Everything else refers to connections by id only.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]*connEntry
}

type connEntry struct {
	conn     Conn
	identity domain.Identity
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnectionID]*connEntry)}
}

// Register allocates an id for a freshly upgraded connection. No identity yet.
func (r *Registry) Register(c Conn) domain.ConnectionID {
	id := domain.ConnectionID(uuid.New().String())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{conn: c}

	return id
}

// SetIdentity records who the connection claims to be. Idempotent; a later
// join may overwrite an earlier one. Unknown ids are a no-op: the connection
// may already be gone by the time its event is processed.
func (r *Registry) SetIdentity(id domain.ConnectionID, userID, userName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[id]; ok {
		e.identity.UserID = userID
		e.identity.UserName = userName
	}
}

// SetCommunity records which community room the connection last joined.
func (r *Registry) SetCommunity(id domain.ConnectionID, communityID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[id]; ok {
		e.identity.CommunityID = communityID
	}
}

func (r *Registry) Identity(id domain.ConnectionID) (domain.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.conns[id]; ok {
		return e.identity, true
	}
	return domain.Identity{}, false
}

func (r *Registry) Conn(id domain.ConnectionID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.conns[id]; ok {
		return e.conn, true
	}
	return nil, false
}

// Unregister removes the entry and returns the identity it held, so dependent
// cleanup can announce the departure. ok=false means the entry was already
// removed; callers must treat that as "cleanup already ran".
func (r *Registry) Unregister(id domain.ConnectionID) (domain.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[id]
	if !ok {
		return domain.Identity{}, false
	}
	delete(r.conns, id)

	return e.identity, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
