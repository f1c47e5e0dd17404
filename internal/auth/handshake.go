package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// TokenParam names both the header and the query parameter a connection
// handshake may carry the credential in. The header wins when both are set.
const TokenParam = "token"

// HandshakeCredential extracts the raw credential from a connection-setup
// request.
func HandshakeCredential(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(TokenParam)); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get(TokenParam))
}

// Handshake authenticates a persistent-connection setup request. It runs once
// per connection, before the upgrade; the returned identity is stored with
// the connection and trusted for its entire lifetime. Any failure refuses the
// handshake outright: there is no anonymous connection mode.
func Handshake(codec *Codec, r *http.Request) (Identity, error) {
	credential := HandshakeCredential(r)
	if credential == "" {
		return Identity{}, fmt.Errorf("%w: %w", ErrHandshakeRefused, ErrMissingCredential)
	}
	id, err := codec.Parse(credential)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrHandshakeRefused, err)
	}
	return id, nil
}
