package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestHandshakeFromQueryParameter(t *testing.T) {
	now := testStart
	codec := testCodec(t, "HS512", &now)

	token, err := codec.Issue(21, "helen", RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/ws/chat?token="+token, nil)
	id, err := Handshake(codec, req)
	if err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	if id.UserID != 21 {
		t.Fatalf("subject id = %d, want 21", id.UserID)
	}
}

func TestHandshakeHeaderWinsOverQuery(t *testing.T) {
	now := testStart
	codec := testCodec(t, "HS512", &now)

	headerToken, err := codec.Issue(1, "header-user", RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	queryToken, err := codec.Issue(2, "query-user", RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/ws/chat?token="+queryToken, nil)
	req.Header.Set(TokenParam, headerToken)
	id, err := Handshake(codec, req)
	if err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	if id.UserID != 1 {
		t.Fatalf("subject id = %d, want header identity 1", id.UserID)
	}
}

func TestHandshakeRefusals(t *testing.T) {
	now := testStart
	codec := testCodec(t, "HS512", &now)

	req := httptest.NewRequest("GET", "/ws/chat", nil)
	if _, err := Handshake(codec, req); !errors.Is(err, ErrHandshakeRefused) || !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("missing credential: got %v", err)
	}

	req = httptest.NewRequest("GET", "/ws/chat?token=not.a.token", nil)
	if _, err := Handshake(codec, req); !errors.Is(err, ErrHandshakeRefused) {
		t.Fatalf("malformed credential: got %v", err)
	}
}
