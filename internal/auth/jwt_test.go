package auth

import (
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	token, err := Issue(7, "teacher", "teacher", "John Teacher", "attendease", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Parse(token, "test-key", "attendease")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Username != "teacher" {
		t.Errorf("Username = %q, want teacher", claims.Username)
	}
	if claims.Role != "teacher" {
		t.Errorf("Role = %q, want teacher", claims.Role)
	}
	if claims.FullName != "John Teacher" {
		t.Errorf("FullName = %q, want John Teacher", claims.FullName)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := Issue(1, "admin", "admin", "System Admin", "attendease", "test-key", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, "test-key", "attendease"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseWrongKey(t *testing.T) {
	token, err := Issue(1, "admin", "admin", "System Admin", "attendease", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, "other-key", "attendease"); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestParseIssuerMismatch(t *testing.T) {
	token, err := Issue(1, "admin", "admin", "System Admin", "someone-else", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, "test-key", "attendease"); err == nil {
		t.Fatal("expected error for issuer mismatch")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("not-a-token", "test-key", "attendease"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
