// Package auth is the token authentication core shared by the campus
// services. Each service builds one Codec at startup (algorithm, secret and
// TTL come from its config) and wires it into the request gate and, for the
// errand service, the chat handshake gate.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

type Config struct {
	// Algorithm is the HMAC variant, "HS256" or "HS512".
	Algorithm string
	Secret    []byte
	TTL       time.Duration
	// Now overrides the clock; tests inject a fixed time here.
	Now func() time.Time
}

// Codec issues and verifies signed identity tokens. The secret is fixed for
// the process lifetime and safe for concurrent use.
type Codec struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("auth: unsupported algorithm %q", cfg.Algorithm)
	}
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{method: method, secret: cfg.Secret, ttl: cfg.TTL, now: now}, nil
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user. The subject is the decimal user id;
// exp is iat plus the configured TTL.
func (c *Codec) Issue(userID int64, username, role string) (string, error) {
	if userID <= 0 {
		return "", errors.New("auth: user id must be positive")
	}
	now := c.now().Truncate(time.Second)
	claims := tokenClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// StripBearer removes a single leading "Bearer " scheme marker. Calling it on
// a bare token is a no-op. A scheme marker with nothing after it is an empty
// credential, not a token named "Bearer".
func StripBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, BearerPrefix) {
		return strings.TrimSpace(raw[len(BearerPrefix):])
	}
	if raw == strings.TrimSpace(BearerPrefix) {
		return ""
	}
	return raw
}

// Parse verifies signature, expiry and claim shape. The token may carry a
// "Bearer " prefix. Expiry is exclusive: a token whose exp equals the current
// time is already expired. Any failure denies; there is no partial result.
func (c *Codec) Parse(raw string) (Identity, error) {
	token := StripBearer(raw)
	if token == "" {
		return Identity{}, ErrMissingCredential
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrInvalidSignature
		default:
			return Identity{}, ErrMalformedCredential
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrMalformedCredential
	}
	if claims.Username == "" || claims.Role == "" {
		return Identity{}, ErrMalformedCredential
	}

	id := Identity{
		UserID:    userID,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
		Token:     token,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

// ExpiringSoon reports whether the identity's expiry falls within window of
// now. Advisory only: callers use it to prompt re-authentication, it never
// invalidates a still-valid token.
func (c *Codec) ExpiringSoon(id Identity, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	return !id.ExpiresAt.After(c.now().Add(window))
}
