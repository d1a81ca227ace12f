package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/metrics"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

// AuthService implements tenant and platform logins.
type AuthService struct {
	lookup ports.NamespaceLookup
	stores ports.StoreFactory
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(lookup ports.NamespaceLookup, stores ports.StoreFactory, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{lookup: lookup, stores: stores, hasher: hasher, tokens: tokens, logger: logger}
}

// Login authenticates a tenant principal. An unknown identifier, an inactive
// principal and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("tenant", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	match, err := s.lookup.FindByLoginAcrossTenants(ctx, email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		s.burnVerify(password)
		metrics.LoginsTotal.WithLabelValues("tenant", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("tenant", "error").Inc()
		return nil, err
	}

	if !s.hasher.Verify(password, match.Principal.PasswordHash) || !match.Principal.Active {
		metrics.LoginsTotal.WithLabelValues("tenant", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	tenantID := match.TenantID
	token, err := s.tokens.Issue(ports.TokenClaims{
		PrincipalID: match.Principal.ID,
		Role:        match.Principal.Role,
		TenantID:    &tenantID,
		Namespace:   match.Namespace.String(),
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("tenant", "error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("tenant", "success").Inc()
	s.logger.Info().
		Int64("tenant_id", tenantID).
		Int64("principal_id", match.Principal.ID).
		Msg("tenant login")

	return &ports.LoginResult{
		Token:     token,
		Principal: match.Principal,
		TenantID:  tenantID,
		Namespace: match.Namespace,
	}, nil
}

// LoginSuperAdmin authenticates against the root namespace only.
func (s *AuthService) LoginSuperAdmin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("root", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	root := s.stores.Root()
	p, err := root.Principals().FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		s.burnVerify(password)
		metrics.LoginsTotal.WithLabelValues("root", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("root", "error").Inc()
		return nil, err
	}
	if !s.hasher.Verify(password, p.PasswordHash) || !p.Active || p.Role != domain.RoleSuperAdmin {
		metrics.LoginsTotal.WithLabelValues("root", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.TokenClaims{PrincipalID: p.ID, Role: domain.RoleSuperAdmin})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("root", "error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("root", "success").Inc()
	s.logger.Info().Int64("principal_id", p.ID).Msg("super admin login")
	return &ports.LoginResult{Token: token, Principal: p, Namespace: root.Namespace()}, nil
}

type bootstrapAdminInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// BootstrapSuperAdmin creates the first platform administrator. An existing
// principal with the same email is returned unchanged.
func (s *AuthService) BootstrapSuperAdmin(ctx context.Context, name, email, password string) (*domain.Principal, error) {
	if err := validation.Struct(bootstrapAdminInput{Name: name, Email: email, Password: password}); err != nil {
		return nil, err
	}

	principals := s.stores.Root().Principals()
	email = domain.NormalizeEmail(email)

	existing, err := principals.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	created, err := principals.Create(ctx, &domain.Principal{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("principal_id", created.ID).Msg("super admin bootstrapped")
	return created, nil
}

// Profile reads the scope's principal from the scope's own namespace.
func (s *AuthService) Profile(ctx context.Context, scope ports.Scope) (*domain.Principal, error) {
	if scope.Store == nil || scope.Store.Namespace() != scope.Request.Namespace {
		return nil, domain.ErrMalformedContext
	}
	return scope.Store.Principals().FindByID(ctx, scope.Request.PrincipalID)
}

// burnVerify runs one comparison against a fixed hash when there is no
// stored hash to compare with.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_ = s.hasher.Verify(password, s.dummyHash)
	}
}
