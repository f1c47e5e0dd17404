// Package ws carries the errand chat over websockets. A connection is
// admitted only after the token handshake verifies, and is keyed by the
// verified user id for the rest of its life.
package ws

import (
	"context"
	"sync"

	"campus/services/errand/internal/domain/chat"

	"github.com/coder/websocket"
)

type MessageStore interface {
	Create(ctx context.Context, message chat.Message) (chat.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID int64) error
}

// Presence mirrors session registration into a shared registry so other
// instances can see who is reachable. Markers carry a TTL; Refresh is
// called periodically while the session lives.
type Presence interface {
	Online(ctx context.Context, userID int64) error
	Offline(ctx context.Context, userID int64) error
	Refresh(ctx context.Context, userID int64) error
}

type session struct {
	userID int64
	conn   *websocket.Conn

	// writeMu serializes writes; the hub may relay into a session while
	// its own read loop is writing acks.
	writeMu sync.Mutex
}

// Hub tracks the live session per user. One session per user: a new
// connection for the same id evicts the old one.
type Hub struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[int64]*session)}
}

// register stores the session and returns the evicted one, if any.
func (h *Hub) register(s *session) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.sessions[s.userID]
	h.sessions[s.userID] = s
	return old
}

// unregister drops the session only if it is still the current one for
// its user; a session evicted by a newer connection must not remove its
// replacement.
func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[s.userID] == s {
		delete(h.sessions, s.userID)
	}
}

func (h *Hub) session(userID int64) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[userID]
}

// Online reports whether a user currently holds a live session on this
// instance.
func (h *Hub) Online(userID int64) bool {
	return h.session(userID) != nil
}
