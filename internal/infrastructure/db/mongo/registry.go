package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/schema"
)

// tenantDatabasePattern preselects candidate databases server side; every
// name is re-validated with domain.ParseTenantNamespace.
const tenantDatabasePattern = `^namespace_[0-9]+$`

// NamespaceRegistry maps tenant namespaces to MongoDB databases.
type NamespaceRegistry struct {
	client *mongo.Client
}

func NewNamespaceRegistry(client *mongo.Client) *NamespaceRegistry {
	return &NamespaceRegistry{client: client}
}

// Register materialises the database by creating its migrations collection.
// Registering an existing namespace succeeds.
func (r *NamespaceRegistry) Register(ctx context.Context, ns domain.Namespace) error {
	if !ns.IsTenant() {
		return &domain.ProvisioningError{Namespace: ns, Step: "register", Err: domain.ErrInvalidNamespace}
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.client.Database(ns.String()).CreateCollection(ctx, schema.Migrations)
	if err != nil && !isNamespaceExists(err) {
		return &domain.ProvisioningError{Namespace: ns, Step: "register", Err: err}
	}
	return nil
}

func (r *NamespaceRegistry) Exists(ctx context.Context, ns domain.Namespace) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	names, err := r.client.ListDatabaseNames(ctx, bson.M{"name": ns.String()})
	if err != nil {
		return false, fmt.Errorf("list databases: %w", err)
	}
	return len(names) > 0, nil
}

// ListAll returns every tenant namespace ordered by tenant identity.
func (r *NamespaceRegistry) ListAll(ctx context.Context) ([]domain.Namespace, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	names, err := r.client.ListDatabaseNames(ctx, bson.M{"name": bson.M{"$regex": tenantDatabasePattern}})
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	out := make([]domain.Namespace, 0, len(names))
	for _, name := range names {
		ns, err := domain.ParseTenantNamespace(name)
		if err != nil {
			continue
		}
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := out[i].TenantID()
		b, _ := out[j].TenantID()
		return a < b
	})
	return out, nil
}

// Drop removes a tenant database. The root database cannot be dropped here.
func (r *NamespaceRegistry) Drop(ctx context.Context, ns domain.Namespace) error {
	if !ns.IsTenant() {
		return fmt.Errorf("drop %q: %w", ns, domain.ErrInvalidNamespace)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.client.Database(ns.String()).Drop(ctx); err != nil {
		return fmt.Errorf("drop namespace %s: %w", ns, err)
	}
	return nil
}
