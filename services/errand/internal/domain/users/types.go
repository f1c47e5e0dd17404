package users

import (
	"errors"
	"time"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Phone        string
	Role         string
	Status       string
	CreatedAt    time.Time
}
