package errands

import (
	"errors"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusAccepted   Status = "accepted"
	StatusDelivering Status = "delivering"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrNotFound = errors.New("errand not found")
	ErrConflict = errors.New("errand state conflict")
)

type Errand struct {
	ID          int64
	PublisherID int64
	RunnerID    *int64
	Title       string
	Detail      string
	RewardCents int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
