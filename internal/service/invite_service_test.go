package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

type fakeInviteRepo struct {
	byID    map[string]*domain.CallInvite
	nextID  int
	updated []string
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{byID: make(map[string]*domain.CallInvite)}
}

func (f *fakeInviteRepo) Create(_ context.Context, inv *domain.CallInvite) error {
	f.nextID++
	inv.ID = "inv-" + strconv.Itoa(f.nextID)
	inv.CreatedAt = time.Now()
	cp := *inv
	f.byID[inv.ID] = &cp
	return nil
}

func (f *fakeInviteRepo) Get(_ context.Context, id string) (*domain.CallInvite, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInviteRepo) ListPendingByReceiver(_ context.Context, receiverID, _ string, limit int) ([]domain.CallInvite, string, error) {
	var out []domain.CallInvite
	for _, inv := range f.byID {
		if inv.ReceiverID == receiverID && inv.Status == domain.InvitePending {
			out = append(out, *inv)
		}
		if len(out) == limit {
			break
		}
	}
	return out, "", nil
}

func (f *fakeInviteRepo) UpdateStatus(_ context.Context, id string, status domain.InviteStatus) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrInviteNotFound
	}
	if inv.Status != domain.InvitePending {
		return domain.ErrInviteResolved
	}
	inv.Status = status
	f.updated = append(f.updated, id)
	return nil
}

func TestInviteService_CreatePending(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewInviteService(repo)

	inv, err := svc.CreatePending(context.Background(), "5", "u1", "Alice", "r2", "u2")
	if err != nil {
		t.Fatalf("CreatePending: %v", err)
	}
	if inv.ID == "" || inv.Status != domain.InvitePending {
		t.Fatalf("unexpected invite: %+v", inv)
	}
	if inv.ReceiverID != "u2" || inv.CallerName != "Alice" || inv.RoomID != "r2" {
		t.Fatalf("fields lost: %+v", inv)
	}
}

func TestInviteService_CreatePendingBlankReceiver(t *testing.T) {
	svc := NewInviteService(newFakeInviteRepo())

	if _, err := svc.CreatePending(context.Background(), "5", "u1", "Alice", "r2", "  "); !errors.Is(err, domain.ErrEmptyReceivers) {
		t.Fatalf("expected ErrEmptyReceivers, got %v", err)
	}
}

func TestInviteService_ResolveTransitions(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewInviteService(repo)
	ctx := context.Background()

	inv, _ := svc.CreatePending(ctx, "5", "u1", "Alice", "r2", "u2")

	if err := svc.Resolve(ctx, inv.ID, "u2", domain.InviteAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Terminal states stay terminal.
	if err := svc.Resolve(ctx, inv.ID, "u2", domain.InviteDeclined); !errors.Is(err, domain.ErrInviteResolved) {
		t.Fatalf("expected ErrInviteResolved, got %v", err)
	}
	if err := svc.Resolve(ctx, inv.ID, "u2", domain.InviteAccepted); !errors.Is(err, domain.ErrInviteResolved) {
		t.Fatalf("re-accept: expected ErrInviteResolved, got %v", err)
	}
}

func TestInviteService_ResolveWrongReceiver(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewInviteService(repo)
	ctx := context.Background()

	inv, _ := svc.CreatePending(ctx, "5", "u1", "Alice", "r2", "u2")

	// Someone else's invite looks like a missing one.
	if err := svc.Resolve(ctx, inv.ID, "u3", domain.InviteAccepted); !errors.Is(err, domain.ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("status changed for wrong receiver: %v", repo.updated)
	}
}

func TestInviteService_ResolveRejectsNonTerminalTarget(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewInviteService(repo)
	ctx := context.Background()

	inv, _ := svc.CreatePending(ctx, "5", "u1", "Alice", "r2", "u2")

	if err := svc.Resolve(ctx, inv.ID, "u2", domain.InvitePending); err == nil {
		t.Fatal("resolving back to pending must fail")
	}
}

func TestInviteService_ListPending(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewInviteService(repo)
	ctx := context.Background()

	_, _ = svc.CreatePending(ctx, "5", "u1", "Alice", "r2", "u2")
	inv2, _ := svc.CreatePending(ctx, "5", "u3", "Cara", "r3", "u2")
	_, _ = svc.CreatePending(ctx, "5", "u1", "Alice", "r2", "u9")
	_ = svc.Resolve(ctx, inv2.ID, "u2", domain.InviteDeclined)

	list, _, err := svc.ListPending(ctx, "u2", "", 0)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(list) != 1 || list[0].CallerID != "u1" {
		t.Fatalf("expected one pending invite from u1, got %v", list)
	}
}
