package token

import (
	"testing"
	"time"

	"github.com/docassembler/backend/internal/model"
)

func TestSignAndParse(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	user := &model.User{ID: 7, Email: "u@example.com"}

	signed, exp, err := svc.Sign(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry")
	}

	claims, err := svc.Parse(signed)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "u@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	svc := NewService("secret-a", time.Hour)
	other := NewService("secret-b", time.Hour)

	signed, _, err := svc.Sign(&model.User{ID: 1, Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := other.Parse(signed); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}
