package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	return claims
}

func TestNewAccessToken_Claims(t *testing.T) {
	t.Parallel()

	at, err := NewAccessToken("secret", 42, true, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	claims := parseClaims(t, at.Token, "secret")
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if adm, _ := claims["adm"].(bool); !adm {
		t.Fatalf("adm = %v, want true", claims["adm"])
	}
	if time.Until(at.Exp) > 15*time.Minute {
		t.Fatalf("expiry too far out: %v", at.Exp)
	}
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	at, err := NewAccessToken("right", 1, false, 5)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil && tok.Valid {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestNewRefreshToken_HashIsStable(t *testing.T) {
	t.Parallel()

	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hashing the same raw token must be deterministic")
	}
	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if rt.Raw == other.Raw {
		t.Fatal("two refresh tokens must not collide")
	}
}
