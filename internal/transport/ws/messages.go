package ws

import "encoding/json"

// Inbound event types.
const (
	TypeJoinRoom             = "join-room"
	TypeJoinPersonalRoom     = "join-personal-room"
	TypeJoinCommunity        = "join-community"
	TypeSendMessage          = "send-message"
	TypeSendCommunityMessage = "send-community-message"
	TypeInitiateCall         = "initiate-call"
)

// Outbound event types.
const (
	TypeExistingUsers       = "existing-users" // snapshot of identified peers, to the joiner only
	TypeUserConnected       = "user-connected"
	TypeUserDisconnected    = "user-disconnected"
	TypeReceiveMessage      = "receive-message"
	TypeNewCommunityMessage = "new-community-message"
	TypeIncomingCall        = "incoming-call"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type JoinPersonalRoomPayload struct {
	UserID string `json:"userId"`
}

type JoinCommunityPayload struct {
	CommunityID string `json:"communityId"`
	UserID      string `json:"userId"`
}

// Chat and signaling bodies are opaque to the relay; they pass through as-is.
type SendMessagePayload struct {
	RoomID  string          `json:"roomId"`
	Message json.RawMessage `json:"message"`
}

type SendCommunityMessagePayload struct {
	CommunityID string          `json:"communityId"`
	Message     json.RawMessage `json:"message"`
}

type InitiateCallPayload struct {
	RoomID        string   `json:"roomId"`
	CallerID      string   `json:"callerId"`
	CallerName    string   `json:"callerName"`
	CommunityID   string   `json:"communityId,omitempty"`
	CommunityName string   `json:"communityName"`
	ReceiverIDs   []string `json:"receiverIds"`
}

type UserInfo struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type UserDisconnectedPayload struct {
	UserID string `json:"userId"`
}

type IncomingCallPayload struct {
	RoomID        string `json:"roomId"`
	CallerID      string `json:"callerId"`
	CallerName    string `json:"callerName"`
	CommunityName string `json:"communityName"`
}
