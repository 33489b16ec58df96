package auth

import (
	"strings"
	"testing"
)

func TestNewHandle_Unique(t *testing.T) {
	a, b := NewHandle(), NewHandle()
	if a == "" || b == "" {
		t.Fatal("handles should not be empty")
	}
	if a == b {
		t.Errorf("handles should be unique, both %q", a)
	}
}

func TestNewAntiCSRFToken(t *testing.T) {
	tok, err := NewAntiCSRFToken()
	if err != nil {
		t.Fatalf("NewAntiCSRFToken: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(tok))
	}
	other, err := NewAntiCSRFToken()
	if err != nil {
		t.Fatalf("NewAntiCSRFToken: %v", err)
	}
	if tok == other {
		t.Error("tokens should be unique")
	}
}

func TestNewSessionToken_HashMatches(t *testing.T) {
	token, hash, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatal("token and hash should not be empty")
	}
	if token == hash {
		t.Error("hash should differ from raw token")
	}
	if got := HashSessionToken(token); got != hash {
		t.Errorf("HashSessionToken(token) = %q, want %q", got, hash)
	}
}

func TestHashSessionToken_Deterministic(t *testing.T) {
	h1 := HashSessionToken("my-token")
	h2 := HashSessionToken("my-token")
	if h1 != h2 {
		t.Errorf("hash not deterministic: %q vs %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if strings.ToLower(h1) != h1 {
		t.Error("hash should be lowercase hex")
	}
}

func TestSessionTokenHashEqual(t *testing.T) {
	token, hash, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if !SessionTokenHashEqual(token, hash) {
		t.Error("matching token should compare equal")
	}
	if SessionTokenHashEqual("wrong-token", hash) {
		t.Error("wrong token should not compare equal")
	}
	if SessionTokenHashEqual(token, "") {
		t.Error("empty stored hash should not compare equal")
	}
}
