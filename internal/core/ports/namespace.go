package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/schema"
)

// NamespaceRegistry maps namespace names to provisioned data containers. It is
// agnostic to tenant activity; callers filter by active TenantRecords.
type NamespaceRegistry interface {
	// Register idempotently ensures the namespace exists as a data container.
	Register(ctx context.Context, ns domain.Namespace) error
	Exists(ctx context.Context, ns domain.Namespace) (bool, error)
	// ListAll returns every provisioned tenant namespace in a stable order.
	ListAll(ctx context.Context) ([]domain.Namespace, error)
	Drop(ctx context.Context, ns domain.Namespace) error
}

// SchemaTarget applies structural steps to one namespace.
type SchemaTarget interface {
	AppliedVersions(ctx context.Context, ns domain.Namespace) (map[int]bool, error)
	HasCollection(ctx context.Context, ns domain.Namespace, name string) (bool, error)
	CreateCollection(ctx context.Context, ns domain.Namespace, name string) error
	EnsureIndexes(ctx context.Context, ns domain.Namespace, collection string, indexes []schema.Index) error
	RecordVersion(ctx context.Context, ns domain.Namespace, step schema.Step) error
}

// NamespaceProvisioner materialises the fixed structure inside a namespace.
type NamespaceProvisioner interface {
	Provision(ctx context.Context, ns domain.Namespace) error
	ProvisionRoot(ctx context.Context) error
}

// NamespaceStore bundles the repositories of exactly one namespace. The
// namespace is fixed when the store is opened and cannot be changed.
type NamespaceStore interface {
	Namespace() domain.Namespace
	Principals() PrincipalRepository
	Projects() ProjectRepository
	Units() UnitRepository
	AuditLog() AuditRepository
}

// StoreFactory opens scoped stores. Tenant rejects anything that is not a
// well-formed tenant namespace, so the root can never be opened by name.
type StoreFactory interface {
	Root() NamespaceStore
	Tenant(ns domain.Namespace) (NamespaceStore, error)
}

// Scope is what a resolved request carries into business logic: its
// validated context and the store bound to its namespace.
type Scope struct {
	Request domain.RequestContext
	Store   NamespaceStore
}

// TenantNamespace pairs an active tenant with its provisioned namespace.
type TenantNamespace struct {
	TenantID  int64
	Name      string
	Namespace domain.Namespace
}
