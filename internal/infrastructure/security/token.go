package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role      string `json:"role"`
	TenantID  *int64 `json:"tenant_id,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 bearer tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *JWTManager) Issue(tc ports.TokenClaims) (string, error) {
	now := m.now()
	c := claims{
		Role:      string(tc.Role),
		TenantID:  tc.TenantID,
		Namespace: tc.Namespace,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(tc.PrincipalID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry. Tenant hints are returned as-is;
// the resolver decides whether they are usable.
func (m *JWTManager) Parse(token string) (*ports.TokenClaims, error) {
	c := &claims{}
	tkn, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &ports.TokenClaims{
		PrincipalID: id,
		Role:        domain.Role(c.Role),
		TenantID:    c.TenantID,
		Namespace:   c.Namespace,
	}, nil
}
