package http

import (
	"context"
	"log"
	"strings"

	"campus/internal/auth"
	"campus/services/lostfound/internal/config"
	"campus/services/lostfound/internal/domain/items"
	"campus/services/lostfound/internal/domain/users"
	"campus/services/lostfound/internal/infra/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Whitelist is the static set of paths served without a token. Read-only
// after process start.
var Whitelist = auth.Whitelist{
	"/api/auth/login",
	"/api/auth/register",
	"/api/items/lost-items",
	"/api/items/found-items",
	"/api/items/search",
	"/api/items/lost-item/**",
	"/api/items/found-item/**",
}

type UserStore interface {
	Create(ctx context.Context, user users.User) (users.User, error)
	FindByUsername(ctx context.Context, username string) (users.User, error)
	FindByID(ctx context.Context, id int64) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
}

type ItemStore interface {
	Create(ctx context.Context, item items.Item) (items.Item, error)
	FindByID(ctx context.Context, id int64) (items.Item, error)
	ListApproved(ctx context.Context, kind items.Kind) ([]items.Item, error)
	ListByStatus(ctx context.Context, status items.Status) ([]items.Item, error)
	Search(ctx context.Context, query string) ([]items.Item, error)
	UpdateStatus(ctx context.Context, id int64, from, to items.Status) error
}

type Server struct {
	cfg   config.Config
	r     *gin.Engine
	codec *auth.Codec
	users UserStore
	items ItemStore
}

type ServerDeps struct {
	Codec *auth.Codec
	Users UserStore
	Items ItemStore
}

func NewServer(cfg config.Config, store *db.Store) (*Server, error) {
	codec, err := auth.NewCodec(auth.Config{
		Algorithm: "HS256",
		Secret:    []byte(cfg.JWTSecret),
		TTL:       cfg.TokenTTL(),
	})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, ServerDeps{
		Codec: codec,
		Users: db.NewUserRepository(store.DB),
		Items: db.NewItemRepository(store.DB),
	})
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) (*Server, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:   cfg,
		r:     r,
		codec: deps.Codec,
		users: deps.Users,
		items: deps.Items,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.r.Use(requestID())
	s.r.Use(auth.Gate(s.codec, Whitelist))

	api := s.r.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)
		api.GET("/auth/check", s.handleAuthCheck)

		api.GET("/users/me", s.handleMe)

		api.GET("/items/lost-items", s.handleListItems(items.KindLost))
		api.GET("/items/found-items", s.handleListItems(items.KindFound))
		api.GET("/items/search", s.handleSearch)
		api.GET("/items/lost-item/:id", s.handleGetItem(items.KindLost))
		api.GET("/items/found-item/:id", s.handleGetItem(items.KindFound))
		api.POST("/items", s.handleCreateItem)
		api.PUT("/items/:id/claim", s.handleClaimItem)

		api.GET("/review/items", s.handleListPending)
		api.POST("/review/items/:id/approve", s.handleReview(items.StatusApproved))
		api.POST("/review/items/:id/reject", s.handleReview(items.StatusRejected))

		api.GET("/admin/users", s.handleListUsers)
	}
}

func (s *Server) Run() error {
	log.Printf("lostfound listening on %s", s.cfg.HTTPAddr)
	return s.r.Run(s.cfg.HTTPAddr)
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
