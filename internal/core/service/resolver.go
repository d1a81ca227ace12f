package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/metrics"
)

// Resolver validates token claims against the tenant registry and opens the
// store of the namespace a request is allowed to touch. Claims are hints:
// the tenant record and the principal are re-read on every call.
type Resolver struct {
	tenants ports.TenantReader
	stores  ports.StoreFactory
	logger  zerolog.Logger
}

func NewResolver(tenants ports.TenantReader, stores ports.StoreFactory, logger zerolog.Logger) *Resolver {
	return &Resolver{tenants: tenants, stores: stores, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, claims ports.TokenClaims) (ports.Scope, error) {
	scope, outcome, err := r.resolve(ctx, claims)
	metrics.ResolutionsTotal.WithLabelValues(outcome).Inc()
	if err != nil {
		ev := r.logger.Debug()
		if outcome == "error" {
			ev = r.logger.Error()
		}
		ev.Err(err).
			Int64("principal_id", claims.PrincipalID).
			Str("claimed_namespace", claims.Namespace).
			Str("outcome", outcome).
			Msg("scope resolution rejected")
		return ports.Scope{}, err
	}
	return scope, nil
}

func (r *Resolver) resolve(ctx context.Context, claims ports.TokenClaims) (ports.Scope, string, error) {
	hasTenantID := claims.TenantID != nil
	hasNamespace := claims.Namespace != ""

	if claims.PrincipalID <= 0 || hasTenantID != hasNamespace {
		return ports.Scope{}, "malformed", domain.ErrMalformedContext
	}

	if !hasTenantID {
		if claims.Role != domain.RoleSuperAdmin {
			return ports.Scope{}, "malformed", domain.ErrMalformedContext
		}
		return r.resolveRoot(ctx, claims)
	}

	if claims.Role == domain.RoleSuperAdmin || *claims.TenantID <= 0 {
		return ports.Scope{}, "malformed", domain.ErrMalformedContext
	}
	ns, err := domain.ParseTenantNamespace(claims.Namespace)
	if err != nil {
		return ports.Scope{}, "malformed", fmt.Errorf("%w: %v", domain.ErrMalformedContext, err)
	}

	tenant, err := r.tenants.FindByID(ctx, *claims.TenantID)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return ports.Scope{}, "tenant_not_found", err
	case err != nil:
		return ports.Scope{}, "error", fmt.Errorf("load tenant: %w", err)
	case !tenant.Active:
		return ports.Scope{}, "tenant_suspended", domain.ErrTenantSuspended
	case tenant.Namespace != ns:
		return ports.Scope{}, "tenant_not_found", domain.ErrTenantNotFound
	}

	store, err := r.stores.Tenant(ns)
	if err != nil {
		return ports.Scope{}, "error", err
	}
	principal, outcome, err := activePrincipal(ctx, store, claims.PrincipalID)
	if err != nil {
		return ports.Scope{}, outcome, err
	}
	if !principal.Role.IsTenantRole() {
		return ports.Scope{}, "malformed", domain.ErrMalformedContext
	}

	return ports.Scope{
		Request: domain.RequestContext{
			Namespace:   ns,
			TenantID:    tenant.ID,
			PrincipalID: principal.ID,
			Role:        principal.Role,
		},
		Store: store,
	}, "tenant", nil
}

func (r *Resolver) resolveRoot(ctx context.Context, claims ports.TokenClaims) (ports.Scope, string, error) {
	store := r.stores.Root()
	principal, outcome, err := activePrincipal(ctx, store, claims.PrincipalID)
	if err != nil {
		return ports.Scope{}, outcome, err
	}
	if principal.Role != domain.RoleSuperAdmin {
		return ports.Scope{}, "malformed", domain.ErrMalformedContext
	}
	return ports.Scope{
		Request: domain.RequestContext{
			Namespace:   store.Namespace(),
			PrincipalID: principal.ID,
			Role:        domain.RoleSuperAdmin,
		},
		Store: store,
	}, "root", nil
}

func activePrincipal(ctx context.Context, store ports.NamespaceStore, id int64) (*domain.Principal, string, error) {
	p, err := store.Principals().FindByID(ctx, id)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, "principal_inactive", domain.ErrPrincipalInactive
	}
	if err != nil {
		return nil, "error", fmt.Errorf("load principal: %w", err)
	}
	if !p.Active {
		return nil, "principal_inactive", domain.ErrPrincipalInactive
	}
	return p, "", nil
}
