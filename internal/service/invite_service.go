package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwrk-planet/signaling-service/internal/domain"
)

// InviteRepo is what the service needs from storage. *postgres.InviteRepository
// satisfies it; tests substitute a fake.
type InviteRepo interface {
	Create(ctx context.Context, inv *domain.CallInvite) error
	Get(ctx context.Context, id string) (*domain.CallInvite, error)
	ListPendingByReceiver(ctx context.Context, receiverID, after string, limit int) ([]domain.CallInvite, string, error)
	UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error
}

type InviteService struct {
	repo InviteRepo
}

func NewInviteService(repo InviteRepo) *InviteService {
	return &InviteService{repo: repo}
}

// CreatePending records a durable invite for one receiver of an offered call.
func (s *InviteService) CreatePending(ctx context.Context, communityID, callerID, callerName, roomID, receiverID string) (*domain.CallInvite, error) {
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" {
		return nil, domain.ErrEmptyReceivers
	}

	inv := &domain.CallInvite{
		CommunityID: communityID,
		CallerID:    callerID,
		CallerName:  callerName,
		RoomID:      roomID,
		ReceiverID:  receiverID,
		Status:      domain.InvitePending,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("inviteRepo.Create: %w", err)
	}
	return inv, nil
}

// ListPending returns the receiver's unresolved invites, newest first.
func (s *InviteService) ListPending(ctx context.Context, receiverID, cursor string, limit int) ([]domain.CallInvite, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return s.repo.ListPendingByReceiver(ctx, receiverID, cursor, limit)
}

// Resolve moves a pending invite into a terminal status on behalf of its
// receiver. pending -> accepted | declined, nothing else.
func (s *InviteService) Resolve(ctx context.Context, inviteID, receiverID string, status domain.InviteStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("invalid target status %q", status)
	}

	inv, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv.ReceiverID != receiverID {
		// Acting on someone else's invite looks the same as a missing one.
		return domain.ErrInviteNotFound
	}
	if inv.Status.Terminal() {
		return domain.ErrInviteResolved
	}

	return s.repo.UpdateStatus(ctx, inviteID, status)
}
