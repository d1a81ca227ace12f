package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

func TestJWTManager_RoundTripTenantClaims(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tenantID := int64(7)

	signed, err := m.Issue(ports.TokenClaims{
		PrincipalID: 3,
		Role:        domain.RoleSalesAgent,
		TenantID:    &tenantID,
		Namespace:   "namespace_7",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.PrincipalID != 3 || got.Role != domain.RoleSalesAgent {
		t.Fatalf("unexpected claims %+v", got)
	}
	if got.TenantID == nil || *got.TenantID != 7 || got.Namespace != "namespace_7" {
		t.Fatalf("tenant hints not preserved: %+v", got)
	}
}

func TestJWTManager_RootClaimsOmitTenantFields(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	signed, err := m.Issue(ports.TokenClaims{PrincipalID: 1, Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.TenantID != nil || got.Namespace != "" {
		t.Fatalf("expected no tenant fields, got %+v", got)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	signed, err := NewJWTManager("one", time.Hour).Issue(ports.TokenClaims{PrincipalID: 1, Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewJWTManager("two", time.Hour).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	signed, err := m.Issue(ports.TokenClaims{PrincipalID: 1, Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":  "1",
		"role": "super_admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tkn.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTManager("secret", time.Hour).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsNonNumericSubject(t *testing.T) {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"role": "super_admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tkn.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTManager("secret", time.Hour).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !h.Verify("correct-horse", hash) {
		t.Fatalf("expected verify to succeed")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("expected verify to fail")
	}
	if NewBcryptHasher(0).cost != 10 {
		t.Fatalf("expected default cost for out-of-range input")
	}
}
