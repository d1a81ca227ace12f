package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

// LoginResult is returned after a successful authentication.
type LoginResult struct {
	Token     string
	Principal *domain.Principal
	TenantID  int64
	Namespace domain.Namespace
}

type AuthService interface {
	// Login authenticates a tenant principal whose namespace is not yet known.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// LoginSuperAdmin authenticates a platform administrator in the root namespace.
	LoginSuperAdmin(ctx context.Context, email, password string) (*LoginResult, error)
	// BootstrapSuperAdmin creates the root administrator if it does not exist yet.
	BootstrapSuperAdmin(ctx context.Context, name, email, password string) (*domain.Principal, error)
	// Profile returns the principal a resolved scope acts as.
	Profile(ctx context.Context, scope Scope) (*domain.Principal, error)
}

// PasswordHasher is the credential hashing collaborator. Implementations own
// the hash format; callers never inspect it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenClaims is the decoded payload of an authentication token. TenantID and
// Namespace are hints: they are re-validated on every request.
type TokenClaims struct {
	PrincipalID int64
	Role        domain.Role
	TenantID    *int64
	Namespace   string
}

// TokenIssuer signs claims into an opaque bearer token.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
}

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*TokenClaims, error)
}
