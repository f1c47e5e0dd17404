// Package presence tracks which chat users currently hold a live
// websocket session, backed by redis so multiple api instances agree.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL bounds how stale an online marker can get if a process dies
// without unregistering its sessions.
const TTL = 2 * time.Minute

type Store struct {
	client *redis.Client
}

// NewStore connects to redis at addr. An empty addr returns a nil-safe
// store whose operations are no-ops; single-instance deployments run
// fine without redis.
func NewStore(addr, password string, db int) *Store {
	if addr == "" {
		return &Store{}
	}
	return &Store{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func key(userID int64) string {
	return fmt.Sprintf("campus:errand:online:%d", userID)
}

func (s *Store) Online(ctx context.Context, userID int64) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Set(ctx, key(userID), "1", TTL).Err()
}

// Refresh extends the online marker for a session that is still alive.
func (s *Store) Refresh(ctx context.Context, userID int64) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Expire(ctx, key(userID), TTL).Err()
}

func (s *Store) Offline(ctx context.Context, userID int64) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, key(userID)).Err()
}

func (s *Store) IsOnline(ctx context.Context, userID int64) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	n, err := s.client.Exists(ctx, key(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
