package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type InviteItem struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	CallerID    string    `json:"callerId"`
	CallerName  string    `json:"callerName"`
	RoomID      string    `json:"roomId"`
	ReceiverID  string    `json:"receiverId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type InvitesListResponse struct {
	Items      []InviteItem `json:"items"`
	NextCursor string       `json:"nextCursor,omitempty"`
}
