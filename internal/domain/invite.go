package domain

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

// Valid reports whether s is one of the known statuses.
func (s InviteStatus) Valid() bool {
	switch s {
	case InvitePending, InviteAccepted, InviteDeclined:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
// pending -> accepted | declined; both terminal, never resurrected.
func (s InviteStatus) Terminal() bool {
	return s == InviteAccepted || s == InviteDeclined
}

// CallInvite is the durable record of an offered call. It exists so a
// receiver that was offline during the live fan-out still finds the call
// on reconnect (and gets a push notification meanwhile).
type CallInvite struct {
	ID          string       `db:"id"`
	CommunityID string       `db:"community_id"`
	CallerID    string       `db:"caller_id"`
	CallerName  string       `db:"caller_name"`
	RoomID      string       `db:"room_id"`
	ReceiverID  string       `db:"receiver_id"`
	Status      InviteStatus `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
}
