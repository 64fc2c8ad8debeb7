package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwrk-planet/signaling-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InviteRepository struct {
	db *pgxpool.Pool
}

func NewInviteRepository(db *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, inv *domain.CallInvite) error {
	query := `
		INSERT INTO call_invites (community_id, caller_id, caller_name, room_id, receiver_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		inv.CommunityID, inv.CallerID, inv.CallerName, inv.RoomID, inv.ReceiverID, inv.Status).
		Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *InviteRepository) Get(ctx context.Context, id string) (*domain.CallInvite, error) {
	var inv domain.CallInvite
	query := `
		SELECT id, community_id, caller_id, caller_name, room_id, receiver_id, status, created_at
		FROM call_invites WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CommunityID, &inv.CallerID, &inv.CallerName,
		&inv.RoomID, &inv.ReceiverID, &inv.Status, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListPendingByReceiver returns the receiver's unresolved invites, newest
// first, with keyset pagination (created_at,id DESC).
func (r *InviteRepository) ListPendingByReceiver(ctx context.Context, receiverID, after string, limit int) ([]domain.CallInvite, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	cur, err := DecodeCursor(after)
	if err != nil {
		return nil, "", fmt.Errorf("decode cursor: %w", err)
	}

	const query = `
		SELECT id, community_id, caller_id, caller_name, room_id, receiver_id, status, created_at
		FROM call_invites
		WHERE receiver_id = $1
		  AND status = 'pending'
		  AND (
		    $2::timestamptz IS NULL
		    OR created_at < $2
		    OR (created_at = $2 AND id < $3)
		  )
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	var createdAt any
	var id any
	if cur != nil {
		createdAt = cur.CreatedAt
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, query, receiverID, createdAt, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []domain.CallInvite
	for rows.Next() {
		var inv domain.CallInvite
		if err := rows.Scan(
			&inv.ID, &inv.CommunityID, &inv.CallerID, &inv.CallerName,
			&inv.RoomID, &inv.ReceiverID, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, "", err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(out) == limit {
		last := out[len(out)-1]
		if c, e := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID}); e == nil {
			next = c
		}
	}
	return out, next, nil
}

// UpdateStatus moves a pending invite to a terminal status. The status guard
// in the WHERE clause makes a resolved invite unreachable, so concurrent
// accept/decline cannot both win.
func (r *InviteRepository) UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE call_invites SET status=$2 WHERE id=$1 AND status='pending'`,
		id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Either no such invite or it is already terminal.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM call_invites WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrInviteNotFound
		}
		return domain.ErrInviteResolved
	}
	return nil
}
