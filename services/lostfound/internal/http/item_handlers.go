package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus/internal/auth"
	"campus/services/lostfound/internal/domain/items"

	"github.com/gin-gonic/gin"
)

type createItemRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (s *Server) handleCreateItem(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}
	kind := items.Kind(strings.TrimSpace(req.Kind))
	if !items.ValidKind(kind) {
		failBadRequest(c, "kind must be lost or found")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		failBadRequest(c, "title is required")
		return
	}

	now := time.Now().UTC()
	item, err := s.items.Create(c.Request.Context(), items.Item{
		OwnerID:     id.UserID,
		Kind:        kind,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Status:      items.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		failInternal(c)
		return
	}

	ok(c, "item submitted for review", toItemResponse(item))
}

func (s *Server) handleListItems(kind items.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := s.items.ListApproved(c.Request.Context(), kind)
		if err != nil {
			failInternal(c)
			return
		}
		ok(c, "ok", toItemResponses(list))
	}
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		failBadRequest(c, "q is required")
		return
	}
	list, err := s.items.Search(c.Request.Context(), query)
	if err != nil {
		failInternal(c)
		return
	}
	ok(c, "ok", toItemResponses(list))
}

func (s *Server) handleGetItem(kind items.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, valid := parseID(c)
		if !valid {
			return
		}
		item, err := s.items.FindByID(c.Request.Context(), itemID)
		if err != nil {
			if errors.Is(err, items.ErrNotFound) {
				fail(c, http.StatusNotFound, "item not found")
				return
			}
			failInternal(c)
			return
		}
		// Unreviewed items stay invisible on the public surface.
		if item.Kind != kind || item.Status != items.StatusApproved {
			fail(c, http.StatusNotFound, "item not found")
			return
		}
		ok(c, "ok", toItemResponse(item))
	}
}

func (s *Server) handleClaimItem(c *gin.Context) {
	if _, found := auth.CurrentIdentity(c); !found {
		failInternal(c)
		return
	}
	itemID, valid := parseID(c)
	if !valid {
		return
	}
	err := s.items.UpdateStatus(c.Request.Context(), itemID, items.StatusApproved, items.StatusClaimed)
	if err != nil {
		if errors.Is(err, items.ErrConflict) {
			failBadRequest(c, "item is not claimable")
			return
		}
		failInternal(c)
		return
	}
	ok(c, "item claimed", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		failBadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func toItemResponse(item items.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Kind:        string(item.Kind),
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toItemResponses(list []items.Item) []itemResponse {
	out := make([]itemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toItemResponse(item))
	}
	return out
}
