package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

type UpdateTenantInput struct {
	ID               int64
	Name             *string `validate:"omitempty,min=2,max=120"`
	ContactEmail     *string `validate:"omitempty,email"`
	ContactPhone     *string `validate:"omitempty,max=32"`
	SubscriptionTier *string `validate:"omitempty,oneof=basic professional enterprise"`
}

// TenantStats is the per-namespace aggregate reported to platform admins.
type TenantStats struct {
	TenantID   int64            `json:"tenant_id"`
	Name       string           `json:"name"`
	Namespace  domain.Namespace `json:"namespace"`
	Principals int64            `json:"principals"`
	Projects   int64            `json:"projects"`
	Units      int64            `json:"units"`
	Error      string           `json:"error,omitempty"`
}

type PlatformStats struct {
	ActiveTenants int64          `json:"active_tenants"`
	Principals    int64          `json:"principals"`
	Projects      int64          `json:"projects"`
	Units         int64          `json:"units"`
	Tenants       []*TenantStats `json:"tenants"`
}

// TenantAdminService covers the super-admin operations on existing tenants.
type TenantAdminService interface {
	List(ctx context.Context, filter TenantFilter) ([]*domain.Tenant, int64, error)
	Get(ctx context.Context, id int64) (*domain.Tenant, error)
	Update(ctx context.Context, input UpdateTenantInput) (*domain.Tenant, error)
	Deactivate(ctx context.Context, id int64) (*domain.Tenant, error)
	Activate(ctx context.Context, id int64) (*domain.Tenant, error)
	Stats(ctx context.Context) (*PlatformStats, error)
}

// RequestResolver turns verified token claims into a validated scope.
type RequestResolver interface {
	Resolve(ctx context.Context, claims TokenClaims) (Scope, error)
}

// NamespaceLookup enumerates tenant namespaces that may be queried directly.
type NamespaceLookup interface {
	// ActiveNamespaces returns provisioned namespaces of active tenants,
	// ordered by tenant identity.
	ActiveNamespaces(ctx context.Context) ([]TenantNamespace, error)
	FindByLoginAcrossTenants(ctx context.Context, email string) (*PrincipalMatch, error)
}

// PrincipalMatch is a principal found in a specific tenant namespace.
type PrincipalMatch struct {
	TenantID  int64
	Namespace domain.Namespace
	Principal *domain.Principal
}
