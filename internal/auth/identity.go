package auth

import (
	"errors"
	"time"
)

var (
	ErrMissingCredential   = errors.New("auth: missing credential")
	ErrMalformedCredential = errors.New("auth: malformed credential")
	ErrInvalidSignature    = errors.New("auth: invalid signature")
	ErrExpiredToken        = errors.New("auth: token expired")
	ErrHandshakeRefused    = errors.New("auth: handshake refused")
)

// Identity is the verified claim set attached to a request or connection.
// It is immutable once issued; Token carries the raw credential so
// downstream calls can forward it.
type Identity struct {
	UserID    int64
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}
