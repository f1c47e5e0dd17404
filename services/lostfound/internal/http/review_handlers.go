package http

import (
	"errors"

	"campus/internal/auth"
	"campus/services/lostfound/internal/domain/items"

	"github.com/gin-gonic/gin"
)

// Role checks live in the handlers, not in the gate: the gate only proves who
// the caller is.

func (s *Server) handleListPending(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	if !auth.IsReviewerOrAdmin(id.Role) {
		failForbidden(c)
		return
	}
	list, err := s.items.ListByStatus(c.Request.Context(), items.StatusPending)
	if err != nil {
		failInternal(c)
		return
	}
	ok(c, "ok", toItemResponses(list))
}

func (s *Server) handleReview(verdict items.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := auth.CurrentIdentity(c)
		if !found {
			failInternal(c)
			return
		}
		if !auth.IsReviewerOrAdmin(id.Role) {
			failForbidden(c)
			return
		}
		itemID, valid := parseID(c)
		if !valid {
			return
		}
		err := s.items.UpdateStatus(c.Request.Context(), itemID, items.StatusPending, verdict)
		if err != nil {
			if errors.Is(err, items.ErrConflict) {
				failBadRequest(c, "item is not pending review")
				return
			}
			failInternal(c)
			return
		}
		ok(c, "review recorded", nil)
	}
}

func (s *Server) handleListUsers(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	if !auth.IsAdmin(id.Role) {
		failForbidden(c)
		return
	}
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		failInternal(c)
		return
	}
	out := make([]userResponse, 0, len(list))
	for _, user := range list {
		out = append(out, toUserResponse(user))
	}
	ok(c, "ok", out)
}
