package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/panelkit/admin-console/internal/core/domain"
)

func TestOpaqueTokenIssuer_Unique(t *testing.T) {
	iss := NewOpaqueTokenIssuer()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return fixed }

	id := domain.Identity{ID: 7}
	a, _ := iss.Issue(id)
	b, _ := iss.Issue(id)

	if a == b {
		t.Fatalf("expected distinct tokens at the same instant, got %s twice", a)
	}
	if !strings.HasPrefix(a, "console-token-7-") {
		t.Fatalf("unexpected token format %s", a)
	}
}

func TestSignedTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewSignedTokenIssuer("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestSignedTokenIssuer_Claims(t *testing.T) {
	iss, err := NewSignedTokenIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := iss.Issue(domain.Identity{ID: 3, Email: "user@demo.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "user" || claims["sub"] != "3" || claims["email"] != "user@demo.com" {
		t.Fatalf("unexpected claims %v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}

	again, _ := iss.Issue(domain.Identity{ID: 3, Email: "user@demo.com", Role: domain.RoleUser})
	if again == token {
		t.Fatalf("expected unique tokens")
	}
}
