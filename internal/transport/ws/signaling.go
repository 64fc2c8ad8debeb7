package ws

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cwrk-planet/signaling-service/internal/domain"
	"github.com/cwrk-planet/signaling-service/internal/notify"
)

// InviteCreator is the durable side of call signaling. *service.InviteService
// satisfies it.
type InviteCreator interface {
	CreatePending(ctx context.Context, communityID, callerID, callerName, roomID, receiverID string) (*domain.CallInvite, error)
}

// PushSender dispatches a push notification. *notify.Dispatcher satisfies it.
type PushSender interface {
	Send(ctx context.Context, n notify.Notification) (*notify.Receipt, error)
}

// Signaling orchestrates call-invite fan-out. Two independent notification
// paths per receiver: the live socket delivery and the durable
// invite+push path. Either may succeed while the other fails.
type Signaling struct {
	relay   *Relay
	rooms   *Rooms
	invites InviteCreator
	push    PushSender

	// budget for one receiver's persistence + push round trip
	collaboratorTimeout time.Duration
}

func NewSignaling(relay *Relay, rooms *Rooms, invites InviteCreator, push PushSender) *Signaling {
	return &Signaling{
		relay:               relay,
		rooms:               rooms,
		invites:             invites,
		push:                push,
		collaboratorTimeout: 10 * time.Second,
	}
}

// InitiateCall fans incoming-call out to each receiver's personal room and
// spawns one durable-path task per receiver. Receivers are independent:
// partial delivery is a normal outcome, and no receiver's failure delays the
// rest.
func (s *Signaling) InitiateCall(roomID, callerID, callerName, communityID, communityName string, receiverIDs []string) {
	msg := Message{
		Type: TypeIncomingCall,
		Payload: IncomingCallPayload{
			RoomID:        roomID,
			CallerID:      callerID,
			CallerName:    callerName,
			CommunityName: communityName,
		},
	}

	for _, receiverID := range receiverIDs {
		receiverID = strings.TrimSpace(receiverID)
		if receiverID == "" {
			continue
		}

		// Check liveness before the live send: a socket appearing afterwards
		// still finds the pending invite on reconnect.
		online := len(s.rooms.Members(receiverID)) > 0

		s.relay.SendToUser(receiverID, msg)

		go s.persistAndNotify(receiverID, roomID, callerID, callerName, communityID, communityName, online)
	}
}

// persistAndNotify is the durable path for one receiver: write the pending
// invite, then push-notify if no device was connected. Errors are logged and
// contained here; they never reach the live fan-out.
func (s *Signaling) persistAndNotify(receiverID, roomID, callerID, callerName, communityID, communityName string, online bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.collaboratorTimeout)
	defer cancel()

	if s.invites != nil {
		if _, err := s.invites.CreatePending(ctx, communityID, callerID, callerName, roomID, receiverID); err != nil {
			slog.Warn("call invite persist failed",
				"receiver", receiverID, "room", roomID, "caller", callerID, "err", err)
		}
	}

	if online || s.push == nil {
		return
	}

	_, err := s.push.Send(ctx, notify.Notification{
		Message:    callerName + " is calling you in " + communityName,
		Recipients: []string{receiverID},
		Data: map[string]any{
			"type":          TypeIncomingCall,
			"roomId":        roomID,
			"callerId":      callerID,
			"callerName":    callerName,
			"communityName": communityName,
		},
	})
	if err != nil {
		slog.Warn("call push dispatch failed",
			"receiver", receiverID, "room", roomID, "err", err)
	}
}
