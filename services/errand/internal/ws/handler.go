package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"campus/internal/auth"
	"campus/services/errand/internal/domain/chat"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// presenceRefreshInterval paces the TTL refresh of a session's online
// marker. It must stay well under presence.TTL so a live session never
// lapses offline. Tests shorten it.
var presenceRefreshInterval = time.Minute

// inbound is what a connected client sends: "send" delivers a message
// to another user, "read" marks a peer's messages as read.
type inbound struct {
	Type    string `json:"type"`
	To      int64  `json:"to,omitempty"`
	From    int64  `json:"from,omitempty"`
	Content string `json:"content,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

type outbound struct {
	Type      string `json:"type"`
	ID        int64  `json:"id,omitempty"`
	From      int64  `json:"from,omitempty"`
	To        int64  `json:"to,omitempty"`
	Content   string `json:"content,omitempty"`
	Kind      string `json:"kind,omitempty"`
	SentAt    string `json:"sentAt,omitempty"`
	Delivered bool   `json:"delivered"`
}

type ChatHandler struct {
	codec    *auth.Codec
	hub      *Hub
	messages MessageStore
	presence Presence
}

func NewChatHandler(codec *auth.Codec, hub *Hub, messages MessageStore, presence Presence) *ChatHandler {
	return &ChatHandler{codec: codec, hub: hub, messages: messages, presence: presence}
}

// Handle upgrades GET /ws/chat. The handshake runs before the upgrade;
// a failed handshake is refused with a bodiless 401 so no socket is
// ever accepted for an unverified caller. The route is served on a
// plain http handler rather than through the gin engine: the upgrade
// hijacks the connection, which gin's wrapped writer does not allow.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := auth.Handshake(h.codec, r)
	if err != nil {
		log.Printf("chat handshake refused: %v", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("chat accept failed for user %d: %v", id.UserID, err)
		return
	}

	s := &session{userID: id.UserID, conn: conn}
	if old := h.hub.register(s); old != nil {
		old.conn.Close(websocket.StatusPolicyViolation, "replaced by a newer connection")
	}
	ctx := r.Context()
	if h.presence != nil {
		if err := h.presence.Online(ctx, id.UserID); err != nil {
			log.Printf("presence online for user %d: %v", id.UserID, err)
		}
		stop := make(chan struct{})
		defer close(stop)
		go h.keepPresence(ctx, id.UserID, stop)
	}
	defer func() {
		h.hub.unregister(s)
		// An evicted session must not mark its replacement offline.
		if h.presence != nil && !h.hub.Online(id.UserID) {
			if err := h.presence.Offline(context.Background(), id.UserID); err != nil {
				log.Printf("presence offline for user %d: %v", id.UserID, err)
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	h.readLoop(ctx, s)
}

// keepPresence re-arms the online marker's TTL until the session ends.
func (h *ChatHandler) keepPresence(ctx context.Context, userID int64, stop <-chan struct{}) {
	ticker := time.NewTicker(presenceRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.presence.Refresh(ctx, userID); err != nil {
				log.Printf("presence refresh for user %d: %v", userID, err)
			}
		}
	}
}

func (h *ChatHandler) readLoop(ctx context.Context, s *session) {
	for {
		var msg inbound
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Printf("chat read for user %d: %v", s.userID, err)
			}
			return
		}

		switch msg.Type {
		case "send":
			h.handleSend(ctx, s, msg)
		case "read":
			h.handleRead(ctx, s, msg)
		default:
			writeSession(ctx, s, outbound{Type: "error", Content: "unknown message type"})
		}
	}
}

func (h *ChatHandler) handleSend(ctx context.Context, s *session, msg inbound) {
	if msg.To <= 0 || msg.Content == "" {
		writeSession(ctx, s, outbound{Type: "error", Content: "recipient and content are required"})
		return
	}
	kind := msg.Kind
	if kind == "" {
		kind = chat.KindText
	}
	if !chat.ValidKind(kind) {
		writeSession(ctx, s, outbound{Type: "error", Content: "unsupported message kind"})
		return
	}

	stored, err := h.messages.Create(ctx, chat.Message{
		SenderID:   s.userID,
		ReceiverID: msg.To,
		Content:    msg.Content,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		log.Printf("chat persist from %d to %d: %v", s.userID, msg.To, err)
		writeSession(ctx, s, outbound{Type: "error", Content: "message not delivered"})
		return
	}

	delivery := outbound{
		Type:    "message",
		ID:      stored.ID,
		From:    stored.SenderID,
		To:      stored.ReceiverID,
		Content: stored.Content,
		Kind:    stored.Kind,
		SentAt:  stored.CreatedAt.Format(time.RFC3339),
	}
	delivered := false
	if peer := h.hub.session(msg.To); peer != nil {
		delivery.Delivered = true
		if err := writeSession(ctx, peer, delivery); err == nil {
			delivered = true
		}
	}

	ack := delivery
	ack.Type = "ack"
	ack.Delivered = delivered
	writeSession(ctx, s, ack)
}

func (h *ChatHandler) handleRead(ctx context.Context, s *session, msg inbound) {
	if msg.From <= 0 {
		writeSession(ctx, s, outbound{Type: "error", Content: "peer is required"})
		return
	}
	if err := h.messages.MarkRead(ctx, s.userID, msg.From); err != nil {
		log.Printf("chat mark read for %d from %d: %v", s.userID, msg.From, err)
	}
}

func writeSession(ctx context.Context, s *session, msg outbound) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return wsjson.Write(ctx, s.conn, msg)
}
