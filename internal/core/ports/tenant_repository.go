package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	Active *bool  // optional
	Search string // optional: partial, case-insensitive match on name
	Page   int    // 1-based
	Limit  int
}

// TenantReader is the read side of the tenant registry consumed by the
// request resolver and the cross-namespace lookup.
type TenantReader interface {
	FindByID(ctx context.Context, id int64) (*domain.Tenant, error)
	// ListActive returns active tenants ordered by ascending identity.
	ListActive(ctx context.Context) ([]*domain.Tenant, error)
}

// TenantRepository persists TenantRecords in the root namespace. Every
// mutation is a single-document atomic write.
type TenantRepository interface {
	TenantReader

	// Insert assigns a store-generated identity and stores t.
	Insert(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	// SetNamespace replaces the placeholder namespace of an inactive tenant.
	SetNamespace(ctx context.Context, id int64, ns domain.Namespace) error
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateMetadata(ctx context.Context, t *domain.Tenant) error
	// DeleteInactive removes a tenant that was never activated. It is used
	// only to roll back a failed onboarding.
	DeleteInactive(ctx context.Context, id int64) error
	List(ctx context.Context, filter TenantFilter) ([]*domain.Tenant, int64, error)
}
