package http

import (
	"strconv"
	"time"

	"campus/internal/auth"
	"campus/services/errand/internal/domain/chat"

	"github.com/gin-gonic/gin"
)

type messageResponse struct {
	ID       int64  `json:"id"`
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Content  string `json:"content"`
	Kind     string `json:"kind"`
	Read     bool   `json:"read"`
	SentAt   string `json:"sentAt"`
	Outgoing bool   `json:"outgoing"`
}

// handleConversation returns the full message history between the
// caller and ?peer=<id>, oldest first.
func (s *Server) handleConversation(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	peer, err := strconv.ParseInt(c.Query("peer"), 10, 64)
	if err != nil || peer <= 0 {
		failBadRequest(c, "peer is required")
		return
	}

	messages, err := s.messages.ListConversation(c.Request.Context(), id.UserID, peer)
	if err != nil {
		failInternal(c)
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m, id.UserID))
	}
	ok(c, "ok", out)
}

// handlePeerOnline reports whether a peer is reachable for chat: a live
// session on this instance, or an online marker left by another one.
func (s *Server) handlePeerOnline(c *gin.Context) {
	peerID, valid := parseID(c)
	if !valid {
		return
	}
	online := s.hub.Online(peerID)
	if !online && s.presence != nil {
		remote, err := s.presence.IsOnline(c.Request.Context(), peerID)
		if err != nil {
			failInternal(c)
			return
		}
		online = remote
	}
	ok(c, "ok", gin.H{"online": online})
}

func toMessageResponse(m chat.Message, viewerID int64) messageResponse {
	return messageResponse{
		ID:       m.ID,
		From:     m.SenderID,
		To:       m.ReceiverID,
		Content:  m.Content,
		Kind:     m.Kind,
		Read:     m.Read,
		SentAt:   m.CreatedAt.Format(time.RFC3339),
		Outgoing: m.SenderID == viewerID,
	}
}
