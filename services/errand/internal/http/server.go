package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"campus/internal/auth"
	"campus/services/errand/internal/config"
	"campus/services/errand/internal/domain/chat"
	"campus/services/errand/internal/domain/errands"
	"campus/services/errand/internal/domain/users"
	"campus/services/errand/internal/infra/db"
	"campus/services/errand/internal/infra/presence"
	"campus/services/errand/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Whitelist is the static set of paths served without a token. The
// errand service keeps everything behind login except the auth entry
// points.
var Whitelist = auth.Whitelist{
	"/api/auth/login",
	"/api/auth/register",
}

type UserStore interface {
	Create(ctx context.Context, user users.User) (users.User, error)
	FindByUsername(ctx context.Context, username string) (users.User, error)
	FindByID(ctx context.Context, id int64) (users.User, error)
}

type ErrandStore interface {
	Create(ctx context.Context, errand errands.Errand) (errands.Errand, error)
	FindByID(ctx context.Context, id int64) (errands.Errand, error)
	ListOpen(ctx context.Context) ([]errands.Errand, error)
	ListByUser(ctx context.Context, userID int64) ([]errands.Errand, error)
	Accept(ctx context.Context, id, runnerID int64) error
	UpdateStatus(ctx context.Context, id int64, from, to errands.Status) error
}

type MessageStore interface {
	Create(ctx context.Context, message chat.Message) (chat.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID int64) error
	ListConversation(ctx context.Context, userA, userB int64) ([]chat.Message, error)
}

// Presence extends the hub-facing registry with the lookup the peer
// status endpoint needs.
type Presence interface {
	ws.Presence
	IsOnline(ctx context.Context, userID int64) (bool, error)
}

type Server struct {
	cfg      config.Config
	r        *gin.Engine
	handler  http.Handler
	codec    *auth.Codec
	users    UserStore
	errands  ErrandStore
	messages MessageStore
	presence Presence
	chat     *ws.ChatHandler
	hub      *ws.Hub
}

type ServerDeps struct {
	Codec    *auth.Codec
	Users    UserStore
	Errands  ErrandStore
	Messages MessageStore
	Presence Presence
}

func NewServer(cfg config.Config, store *db.Store, secret []byte) (*Server, error) {
	codec, err := auth.NewCodec(auth.Config{
		Algorithm: "HS512",
		Secret:    secret,
		TTL:       cfg.TokenTTL(),
	})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, ServerDeps{
		Codec:    codec,
		Users:    db.NewUserRepository(store.DB),
		Errands:  db.NewErrandRepository(store.DB),
		Messages: db.NewMessageRepository(store.DB),
		Presence: presence.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
	})
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) (*Server, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	hub := ws.NewHub()
	s := &Server{
		cfg:      cfg,
		r:        r,
		codec:    deps.Codec,
		users:    deps.Users,
		errands:  deps.Errands,
		messages: deps.Messages,
		presence: deps.Presence,
		hub:      hub,
		chat:     ws.NewChatHandler(deps.Codec, hub, deps.Messages, deps.Presence),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.r.Use(requestID())

	// The request gate guards only /api; the websocket route runs its
	// own handshake gate before upgrading.
	api := s.r.Group("/api", auth.Gate(s.codec, Whitelist))
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)

		api.GET("/users/me", s.handleMe)

		api.GET("/errands", s.handleListOpen)
		api.GET("/errands/mine", s.handleListMine)
		api.POST("/errands", s.handlePublish)
		api.POST("/errands/:id/accept", s.handleAccept)
		api.POST("/errands/:id/complete", s.handleComplete)
		api.POST("/errands/:id/cancel", s.handleCancel)

		api.GET("/chat/messages", s.handleConversation)
		api.GET("/chat/peers/:id/online", s.handlePeerOnline)
	}

	// The chat upgrade hijacks the connection, which gin's wrapped
	// writer refuses, so the route mounts on a plain mux in front of
	// the engine.
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/chat", s.chat.Handle)
	mux.Handle("/", s.r)
	s.handler = mux
}

// Hub exposes the live-session registry, used by handlers and tests.
func (s *Server) Hub() *ws.Hub { return s.hub }

// Handler is the full request surface: the websocket route plus the
// gin engine.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) Run() error {
	log.Printf("errand listening on %s", s.cfg.HTTPAddr)
	return http.ListenAndServe(s.cfg.HTTPAddr, s.handler)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
