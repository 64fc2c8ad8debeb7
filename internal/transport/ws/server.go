package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cwrk-planet/signaling-service/internal/domain"

	"github.com/gorilla/websocket"
)

type Server struct {
	upgrader  websocket.Upgrader
	registry  *Registry
	rooms     *Rooms
	relay     *Relay
	presence  *Presence
	signaling *Signaling

	pingEvery time.Duration
}

func NewServer(registry *Registry, rooms *Rooms, relay *Relay, presence *Presence, signaling *Signaling, pingEvery time.Duration) *Server {
	if pingEvery <= 0 {
		pingEvery = 15 * time.Second
	}
	return &Server{
		registry:  registry,
		rooms:     rooms,
		relay:     relay,
		presence:  presence,
		signaling: signaling,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: pingEvery,
	}
}

// WS endpoint: GET /ws. The handshake only registers the connection;
// identity arrives with the join events.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	connID := s.registry.Register(c)
	slog.Debug("ws connected", "conn", connID)

	go s.writeLoop(r.Context(), c)
	s.readLoop(connID, c)

	// One cleanup for every way the connection can end: read error, failed
	// send, explicit close. HandleDisconnect no-ops on the second pass.
	s.presence.HandleDisconnect(connID)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", connID, "err", err)
	}
	slog.Debug("ws disconnected", "conn", connID)
}

func (s *Server) readLoop(connID domain.ConnectionID, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg rawMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("ws malformed frame dropped", "conn", connID, "err", err)
			continue
		}
		s.dispatch(connID, msg)
	}
}

// rawMessage keeps the payload undecoded until the type is known.
type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// dispatch routes one inbound event. Malformed events are dropped with a log,
// never fatal; a connection that has already vanished makes every handler a
// no-op further down.
func (s *Server) dispatch(connID domain.ConnectionID, msg rawMessage) {
	switch msg.Type {
	case TypeJoinRoom:
		var p JoinRoomPayload
		if decode(msg.Payload, &p) != nil || p.RoomID == "" || p.UserID == "" {
			s.dropEvent(connID, msg.Type)
			return
		}
		s.presence.HandleJoin(connID, p.RoomID, p.UserID, p.UserName)

	case TypeJoinPersonalRoom:
		var p JoinPersonalRoomPayload
		if decode(msg.Payload, &p) != nil || p.UserID == "" {
			s.dropEvent(connID, msg.Type)
			return
		}
		s.rooms.Join(p.UserID, connID)

	case TypeJoinCommunity:
		var p JoinCommunityPayload
		if decode(msg.Payload, &p) != nil || p.CommunityID == "" {
			s.dropEvent(connID, msg.Type)
			return
		}
		s.registry.SetCommunity(connID, p.CommunityID)
		s.rooms.Join(domain.CommunityRoom(p.CommunityID), connID)

	case TypeSendMessage:
		var p SendMessagePayload
		if decode(msg.Payload, &p) != nil || p.RoomID == "" {
			s.dropEvent(connID, msg.Type)
			return
		}
		// Sender-inclusive: the author renders from the same event stream.
		s.relay.SendToRoom(p.RoomID, Message{
			Type:    TypeReceiveMessage,
			Payload: p.Message,
		})

	case TypeSendCommunityMessage:
		var p SendCommunityMessagePayload
		if decode(msg.Payload, &p) != nil || p.CommunityID == "" {
			s.dropEvent(connID, msg.Type)
			return
		}
		// Community chat excludes the sender, unlike send-message.
		s.relay.SendToRoomExcept(domain.CommunityRoom(p.CommunityID), connID, Message{
			Type:    TypeNewCommunityMessage,
			Payload: p.Message,
		})

	case TypeInitiateCall:
		var p InitiateCallPayload
		if decode(msg.Payload, &p) != nil || p.RoomID == "" || len(p.ReceiverIDs) == 0 {
			s.dropEvent(connID, msg.Type)
			return
		}
		s.signaling.InitiateCall(p.RoomID, p.CallerID, p.CallerName, p.CommunityID, p.CommunityName, p.ReceiverIDs)

	default:
		slog.Debug("ws unknown event dropped", "conn", connID, "type", msg.Type)
	}
}

func (s *Server) dropEvent(connID domain.ConnectionID, typ string) {
	slog.Debug("ws malformed event dropped", "conn", connID, "type", typ)
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

func decode(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return json.Unmarshal([]byte("null"), dst)
	}
	return json.Unmarshal(payload, dst)
}

// wsConn serializes writes to one gorilla connection through a single send
// slot; gorilla allows at most one concurrent writer.
type wsConn struct {
	conn      *websocket.Conn
	sendMu    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })

	return c.conn.Close()
}
