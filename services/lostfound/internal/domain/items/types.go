package items

import (
	"errors"
	"time"
)

type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusClaimed  Status = "claimed"
)

var (
	ErrNotFound = errors.New("item not found")
	ErrConflict = errors.New("item state conflict")
)

type Item struct {
	ID          int64
	OwnerID     int64
	Kind        Kind
	Title       string
	Description string
	Location    string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ValidKind(kind Kind) bool {
	return kind == KindLost || kind == KindFound
}
