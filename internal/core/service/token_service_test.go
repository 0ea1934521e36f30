package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestTokenService_IssueClaimsDefaultTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", 0)
	svc.now = func() time.Time { return now }

	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil },
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if claims["id"] != float64(7) {
		t.Fatalf("expected id 7, got %v", claims["id"])
	}
	if want := float64(now.Add(24 * time.Hour).Unix()); claims["exp"] != want {
		t.Fatalf("expected exp %v, got %v", want, claims["exp"])
	}
	if len(claims) != 2 {
		t.Fatalf("expected only id and exp, got %v", claims)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _ := NewTokenService("secret", time.Hour).Issue(1)
	if _, err := NewTokenService("other", time.Hour).Verify(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenService("secret", time.Hour).Verify(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_RequiresExpAndID(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1}).SignedString([]byte("secret"))
	if _, err := svc.Verify(noExp); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid without exp, got %v", err)
	}

	noID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if _, err := svc.Verify(noID); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid without id, got %v", err)
	}
}
