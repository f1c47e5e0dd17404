package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"campus/internal/auth"
	"campus/services/lostfound/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// refreshWindow is the advisory window clients use to prompt re-login.
const refreshWindow = 30 * time.Minute

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
	User      userResponse `json:"user"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 6 {
		failBadRequest(c, "username and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		failInternal(c)
		return
	}

	user, err := s.users.Create(c.Request.Context(), users.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(req.Email),
		Role:         auth.RoleUser,
		Status:       users.StatusActive,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			failBadRequest(c, "username already taken")
			return
		}
		failInternal(c)
		return
	}

	ok(c, "registered", toUserResponse(user))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	user, err := s.users.FindByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		failInternal(c)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if user.Status != users.StatusActive {
		fail(c, http.StatusForbidden, "account disabled")
		return
	}

	token, err := s.codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		failInternal(c)
		return
	}

	ok(c, "login succeeded", loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.cfg.TokenTTL().Seconds()),
		User:      toUserResponse(user),
	})
}

// handleAuthCheck lets a logged-in client ask whether its token should be
// refreshed soon. Advisory only.
func (s *Server) handleAuthCheck(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	ok(c, "ok", gin.H{
		"expiringSoon": s.codec.ExpiringSoon(id, refreshWindow),
		"expiresAt":    id.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMe(c *gin.Context) {
	id, found := auth.CurrentIdentity(c)
	if !found {
		failInternal(c)
		return
	}
	user, err := s.users.FindByID(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		failInternal(c)
		return
	}
	ok(c, "ok", toUserResponse(user))
}

func toUserResponse(user users.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
