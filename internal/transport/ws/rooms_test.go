package ws

import (
	"sort"
	"testing"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

func TestRooms_JoinIdempotent(t *testing.T) {
	rooms := NewRooms()
	a := domain.ConnectionID("a")

	rooms.Join("r1", a)
	rooms.Join("r1", a)

	if got := rooms.Members("r1"); len(got) != 1 || got[0] != a {
		t.Fatalf("expected [a], got %v", got)
	}
}

func TestRooms_LeaveDropsEmptyRoom(t *testing.T) {
	rooms := NewRooms()
	a := domain.ConnectionID("a")
	b := domain.ConnectionID("b")

	rooms.Join("r1", a)
	rooms.Join("r1", b)
	rooms.Leave("r1", a)

	if got := rooms.Members("r1"); len(got) != 1 || got[0] != b {
		t.Fatalf("expected [b], got %v", got)
	}

	rooms.Leave("r1", b)
	if got := rooms.Members("r1"); got != nil {
		t.Fatalf("expected empty room to vanish, got %v", got)
	}
}

func TestRooms_LeaveUnknownIsNoop(t *testing.T) {
	rooms := NewRooms()
	rooms.Leave("r1", "ghost")

	if got := rooms.Members("r1"); got != nil {
		t.Fatalf("leave on unknown room created state: %v", got)
	}
}

func TestRooms_MembersExcept(t *testing.T) {
	rooms := NewRooms()
	a := domain.ConnectionID("a")
	b := domain.ConnectionID("b")
	c := domain.ConnectionID("c")

	rooms.Join("r1", a)
	rooms.Join("r1", b)
	rooms.Join("r1", c)

	got := rooms.MembersExcept("r1", c)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestRooms_LeaveAll(t *testing.T) {
	rooms := NewRooms()
	a := domain.ConnectionID("a")
	b := domain.ConnectionID("b")

	// a is in a class room, a personal room and a community room at once.
	rooms.Join("r1", a)
	rooms.Join("u1", a)
	rooms.Join("community-5", a)
	rooms.Join("r1", b)

	left := rooms.LeaveAll(a)
	if len(left) != 3 {
		t.Fatalf("expected 3 rooms left, got %v", left)
	}

	if got := rooms.RoomsOf(a); got != nil {
		t.Fatalf("connection still member of %v after LeaveAll", got)
	}
	if got := rooms.Members("r1"); len(got) != 1 || got[0] != b {
		t.Fatalf("expected r1=[b], got %v", got)
	}
	if got := rooms.Members("u1"); got != nil {
		t.Fatalf("personal room should be gone, got %v", got)
	}

	// second LeaveAll is a no-op
	if left := rooms.LeaveAll(a); left != nil {
		t.Fatalf("second LeaveAll returned %v", left)
	}
}

func TestRooms_LeaveAllZeroRooms(t *testing.T) {
	rooms := NewRooms()

	if left := rooms.LeaveAll("never-joined"); left != nil {
		t.Fatalf("expected nil, got %v", left)
	}
}
