package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus/internal/auth"
	"campus/services/lostfound/internal/config"
	"campus/services/lostfound/internal/domain/items"
	"campus/services/lostfound/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type stubUserStore struct {
	byID       map[int64]users.User
	byUsername map[string]users.User
	nextID     int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		byID:       map[int64]users.User{},
		byUsername: map[string]users.User{},
		nextID:     1,
	}
}

func (s *stubUserStore) add(user users.User) users.User {
	user.ID = s.nextID
	s.nextID++
	s.byID[user.ID] = user
	s.byUsername[user.Username] = user
	return user
}

func (s *stubUserStore) Create(_ context.Context, user users.User) (users.User, error) {
	if _, exists := s.byUsername[user.Username]; exists {
		return users.User{}, users.ErrAlreadyExists
	}
	return s.add(user), nil
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (users.User, error) {
	user, exists := s.byUsername[username]
	if !exists {
		return users.User{}, users.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id int64) (users.User, error) {
	user, exists := s.byID[id]
	if !exists {
		return users.User{}, users.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) List(context.Context) ([]users.User, error) {
	out := make([]users.User, 0, len(s.byID))
	for _, user := range s.byID {
		out = append(out, user)
	}
	return out, nil
}

type stubItemStore struct {
	byID   map[int64]items.Item
	nextID int64
}

func newStubItemStore() *stubItemStore {
	return &stubItemStore{byID: map[int64]items.Item{}, nextID: 1}
}

func (s *stubItemStore) Create(_ context.Context, item items.Item) (items.Item, error) {
	item.ID = s.nextID
	s.nextID++
	s.byID[item.ID] = item
	return item, nil
}

func (s *stubItemStore) FindByID(_ context.Context, id int64) (items.Item, error) {
	item, exists := s.byID[id]
	if !exists {
		return items.Item{}, items.ErrNotFound
	}
	return item, nil
}

func (s *stubItemStore) ListApproved(_ context.Context, kind items.Kind) ([]items.Item, error) {
	var out []items.Item
	for _, item := range s.byID {
		if item.Kind == kind && item.Status == items.StatusApproved {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubItemStore) ListByStatus(_ context.Context, status items.Status) ([]items.Item, error) {
	var out []items.Item
	for _, item := range s.byID {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubItemStore) Search(_ context.Context, query string) ([]items.Item, error) {
	var out []items.Item
	for _, item := range s.byID {
		if item.Status == items.StatusApproved && strings.Contains(item.Title, query) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubItemStore) UpdateStatus(_ context.Context, id int64, from, to items.Status) error {
	item, exists := s.byID[id]
	if !exists || item.Status != from {
		return items.ErrConflict
	}
	item.Status = to
	s.byID[id] = item
	return nil
}

type fixture struct {
	server *Server
	codec  *auth.Codec
	users  *stubUserStore
	items  *stubItemStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec(auth.Config{
		Algorithm: "HS256",
		Secret:    []byte("lostfound-test-secret"),
		TTL:       time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	userStore := newStubUserStore()
	itemStore := newStubItemStore()
	server, err := NewServerWithDeps(config.Config{HTTPAddr: ":0", JWTTTLHours: 1}, ServerDeps{
		Codec: codec,
		Users: userStore,
		Items: itemStore,
	})
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}
	return &fixture{server: server, codec: codec, users: userStore, items: itemStore}
}

func (f *fixture) addUser(t *testing.T, username, password, role string) users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return f.users.add(users.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       users.StatusActive,
		CreatedAt:    time.Now().UTC(),
	})
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.HeaderAuthorization, auth.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	f.server.r.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return result
}

func TestLoginIssuesUsableToken(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice", "secret-pass", auth.RoleUser)

	w := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"secret-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)
	data, _ := result.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("no token in login response: %s", w.Body.String())
	}

	w = f.do(t, http.MethodGet, "/api/users/me", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d (%s)", w.Code, w.Body.String())
	}
	me := decodeResult(t, w)
	profile, _ := me.Data.(map[string]any)
	if profile["username"] != "alice" {
		t.Fatalf("me returned %s", w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice", "secret-pass", auth.RoleUser)

	w := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestProtectedEndpointWithoutToken(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/users/me", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	result := decodeResult(t, w)
	if result.Code != http.StatusUnauthorized || result.Data != nil {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestPublicSurfacesServeWithoutToken(t *testing.T) {
	f := newFixture(t)
	f.items.byID[1] = items.Item{ID: 1, OwnerID: 9, Kind: items.KindLost, Title: "umbrella", Status: items.StatusApproved}
	f.items.nextID = 2

	for _, path := range []string{
		"/api/items/lost-items",
		"/api/items/lost-item/1",
		"/api/items/search?q=umbrella",
	} {
		w := f.do(t, http.MethodGet, path, "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d (%s)", path, w.Code, w.Body.String())
		}
	}
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/register", "", `{"username":"bob","password":"hunter22","email":"bob@campus.edu"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d (%s)", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"bob","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login after register status = %d (%s)", w.Code, w.Body.String())
	}
}

func TestReviewRequiresReviewerRole(t *testing.T) {
	f := newFixture(t)
	plain := f.addUser(t, "carol", "pass-word", auth.RoleUser)
	reviewer := f.addUser(t, "dan", "pass-word", auth.RoleReviewer)
	f.items.byID[5] = items.Item{ID: 5, OwnerID: plain.ID, Kind: items.KindLost, Title: "wallet", Status: items.StatusPending}

	plainToken, err := f.codec.Issue(plain.ID, plain.Username, plain.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	reviewerToken, err := f.codec.Issue(reviewer.ID, reviewer.Username, reviewer.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := f.do(t, http.MethodPost, "/api/review/items/5/approve", plainToken, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("plain user review status = %d, want 403", w.Code)
	}

	w = f.do(t, http.MethodPost, "/api/review/items/5/approve", reviewerToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("reviewer review status = %d (%s)", w.Code, w.Body.String())
	}
	if f.items.byID[5].Status != items.StatusApproved {
		t.Fatalf("item not approved: %+v", f.items.byID[5])
	}
}

func TestAdminListUsersRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	reviewer := f.addUser(t, "dan", "pass-word", auth.RoleReviewer)
	admin := f.addUser(t, "eve", "pass-word", auth.RoleAdmin)

	reviewerToken, err := f.codec.Issue(reviewer.ID, reviewer.Username, reviewer.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	adminToken, err := f.codec.Issue(admin.ID, admin.Username, admin.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if w := f.do(t, http.MethodGet, "/api/admin/users", reviewerToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("reviewer admin access status = %d, want 403", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/admin/users", adminToken, ""); w.Code != http.StatusOK {
		t.Fatalf("admin access status = %d", w.Code)
	}
}

func TestAuthCheckReportsExpiry(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "frank", "pass-word", auth.RoleUser)
	token, err := f.codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := f.do(t, http.MethodGet, "/api/auth/check", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d (%s)", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)
	data, _ := result.Data.(map[string]any)
	if soon, ok := data["expiringSoon"].(bool); !ok || soon {
		t.Fatalf("fresh one-hour token should not be expiring soon: %s", w.Body.String())
	}
}
