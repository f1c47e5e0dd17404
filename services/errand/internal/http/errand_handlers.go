package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus/internal/auth"
	"campus/services/errand/internal/domain/errands"

	"github.com/gin-gonic/gin"
)

type publishRequest struct {
	Title       string `json:"title"`
	Detail      string `json:"detail"`
	RewardCents int64  `json:"rewardCents"`
}

type errandResponse struct {
	ID          int64  `json:"id"`
	PublisherID int64  `json:"publisherId"`
	RunnerID    *int64 `json:"runnerId"`
	Title       string `json:"title"`
	Detail      string `json:"detail"`
	RewardCents int64  `json:"rewardCents"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (s *Server) handlePublish(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		failBadRequest(c, "title is required")
		return
	}
	if req.RewardCents < 0 {
		failBadRequest(c, "reward must not be negative")
		return
	}

	now := time.Now().UTC()
	errand, err := s.errands.Create(c.Request.Context(), errands.Errand{
		PublisherID: id.UserID,
		Title:       req.Title,
		Detail:      req.Detail,
		RewardCents: req.RewardCents,
		Status:      errands.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		failInternal(c)
		return
	}
	ok(c, "published", toErrandResponse(errand))
}

func (s *Server) handleListOpen(c *gin.Context) {
	list, err := s.errands.ListOpen(c.Request.Context())
	if err != nil {
		failInternal(c)
		return
	}
	ok(c, "ok", toErrandResponses(list))
}

func (s *Server) handleListMine(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	list, err := s.errands.ListByUser(c.Request.Context(), id.UserID)
	if err != nil {
		failInternal(c)
		return
	}
	ok(c, "ok", toErrandResponses(list))
}

func (s *Server) handleAccept(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	errandID, ok2 := parseID(c)
	if !ok2 {
		return
	}

	err := s.errands.Accept(c.Request.Context(), errandID, id.UserID)
	if err != nil {
		if errors.Is(err, errands.ErrConflict) {
			failBadRequest(c, "errand is not open for acceptance")
			return
		}
		failInternal(c)
		return
	}
	ok(c, "accepted", nil)
}

// handleComplete lets the runner move an accepted or delivering errand
// to done.
func (s *Server) handleComplete(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	errandID, ok2 := parseID(c)
	if !ok2 {
		return
	}

	errand, err := s.errands.FindByID(c.Request.Context(), errandID)
	if err != nil {
		if errors.Is(err, errands.ErrNotFound) {
			fail(c, http.StatusNotFound, "errand not found")
			return
		}
		failInternal(c)
		return
	}
	if errand.RunnerID == nil || *errand.RunnerID != id.UserID {
		failForbidden(c)
		return
	}
	if errand.Status != errands.StatusAccepted && errand.Status != errands.StatusDelivering {
		failBadRequest(c, "errand cannot be completed from its current state")
		return
	}

	if err := s.errands.UpdateStatus(c.Request.Context(), errandID, errand.Status, errands.StatusDone); err != nil {
		if errors.Is(err, errands.ErrConflict) {
			failBadRequest(c, "errand changed state, try again")
			return
		}
		failInternal(c)
		return
	}
	ok(c, "completed", nil)
}

// handleCancel lets the publisher cancel an errand that no runner has
// started delivering yet.
func (s *Server) handleCancel(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	errandID, ok2 := parseID(c)
	if !ok2 {
		return
	}

	errand, err := s.errands.FindByID(c.Request.Context(), errandID)
	if err != nil {
		if errors.Is(err, errands.ErrNotFound) {
			fail(c, http.StatusNotFound, "errand not found")
			return
		}
		failInternal(c)
		return
	}
	if errand.PublisherID != id.UserID {
		failForbidden(c)
		return
	}
	if errand.Status != errands.StatusOpen && errand.Status != errands.StatusAccepted {
		failBadRequest(c, "errand cannot be cancelled from its current state")
		return
	}

	if err := s.errands.UpdateStatus(c.Request.Context(), errandID, errand.Status, errands.StatusCancelled); err != nil {
		if errors.Is(err, errands.ErrConflict) {
			failBadRequest(c, "errand changed state, try again")
			return
		}
		failInternal(c)
		return
	}
	ok(c, "cancelled", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failBadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func toErrandResponse(errand errands.Errand) errandResponse {
	return errandResponse{
		ID:          errand.ID,
		PublisherID: errand.PublisherID,
		RunnerID:    errand.RunnerID,
		Title:       errand.Title,
		Detail:      errand.Detail,
		RewardCents: errand.RewardCents,
		Status:      string(errand.Status),
		CreatedAt:   errand.CreatedAt.Format(time.RFC3339),
	}
}

func toErrandResponses(list []errands.Errand) []errandResponse {
	out := make([]errandResponse, 0, len(list))
	for _, errand := range list {
		out = append(out, toErrandResponse(errand))
	}
	return out
}
