package util

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "unit-test-secret"

	token, err := GenerateToken(secret, "session-abc", 42, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.SessionID != "session-abc" {
		t.Errorf("session id: expected session-abc, got %s", claims.SessionID)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: expected 42, got %d", claims.UserID)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "session-abc", 1, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestParseToken_Expired(t *testing.T) {
	// negative ttl falls back to the 24h default, so use a tiny positive one
	token, err := GenerateToken("secret", "session-abc", 1, time.Nanosecond)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ParseToken("secret", token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Error("garbage should not parse")
	}
}
