package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

const entityPrincipal = "principal"

// UserService manages the staff principals of a tenant namespace.
// tenant_admin manages every tenant role, sales_manager manages sales agents.
type UserService struct {
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(hasher ports.PasswordHasher, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{hasher: hasher, audit: audit, logger: logger}
}

func (s *UserService) Create(ctx context.Context, scope ports.Scope, input ports.CreateUserInput) (*domain.Principal, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	role := domain.Role(input.Role)
	if !scope.Request.Role.CanManage(role) {
		return nil, domain.ErrForbidden
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p, err := store.Principals().Create(ctx, &domain.Principal{
		Name:         strings.TrimSpace(input.Name),
		Email:        domain.NormalizeEmail(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditCreate, entityPrincipal, p.ID, map[string]any{
		"email": p.Email,
		"role":  p.Role,
	}))
	return p, nil
}

func (s *UserService) Get(ctx context.Context, scope ports.Scope, id int64) (*domain.Principal, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	return store.Principals().FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, scope ports.Scope, filter ports.PrincipalFilter) ([]*domain.Principal, int64, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return store.Principals().List(ctx, filter)
}

func (s *UserService) Update(ctx context.Context, scope ports.Scope, input ports.UpdateUserInput) (*domain.Principal, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	p, err := store.Principals().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	self := p.ID == scope.Request.PrincipalID
	if !self && !scope.Request.Role.CanManage(p.Role) {
		return nil, domain.ErrForbidden
	}

	changes := map[string]any{}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
		changes["name"] = p.Name
	}
	if input.Phone != nil {
		p.Phone = strings.TrimSpace(*input.Phone)
		changes["phone"] = p.Phone
	}
	if input.Role != nil && domain.Role(*input.Role) != p.Role {
		role := domain.Role(*input.Role)
		if self || !scope.Request.Role.CanManage(role) {
			return nil, domain.ErrForbidden
		}
		p.Role = role
		changes["role"] = role
	}
	if input.Active != nil && *input.Active != p.Active {
		if self {
			return nil, domain.ErrForbidden
		}
		p.Active = *input.Active
		changes["active"] = p.Active
	}
	p.UpdatedAt = time.Now().UTC()

	if err := store.Principals().Update(ctx, p); err != nil {
		return nil, err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditUpdate, entityPrincipal, p.ID, changes))
	return p, nil
}
