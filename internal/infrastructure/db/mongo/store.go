package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// StoreFactory opens scoped stores on the shared client. The database handle
// is fixed at construction, so every repository of a store is bound to exactly
// one namespace.
type StoreFactory struct {
	client *mongo.Client
	root   domain.Namespace
}

func NewStoreFactory(client *mongo.Client, rootDatabase string) *StoreFactory {
	return &StoreFactory{client: client, root: domain.Namespace(rootDatabase)}
}

func (f *StoreFactory) Root() ports.NamespaceStore {
	return newStore(f.client.Database(f.root.String()), f.root)
}

func (f *StoreFactory) Tenant(ns domain.Namespace) (ports.NamespaceStore, error) {
	if !ns.IsTenant() || ns == f.root {
		return nil, fmt.Errorf("open store %q: %w", ns, domain.ErrInvalidNamespace)
	}
	return newStore(f.client.Database(ns.String()), ns), nil
}

type store struct {
	ns         domain.Namespace
	principals *PrincipalRepository
	projects   *ProjectRepository
	units      *UnitRepository
	audit      *AuditRepository
}

func newStore(db *mongo.Database, ns domain.Namespace) *store {
	return &store{
		ns:         ns,
		principals: NewPrincipalRepository(db),
		projects:   NewProjectRepository(db),
		units:      NewUnitRepository(db),
		audit:      NewAuditRepository(db),
	}
}

func (s *store) Namespace() domain.Namespace           { return s.ns }
func (s *store) Principals() ports.PrincipalRepository { return s.principals }
func (s *store) Projects() ports.ProjectRepository     { return s.projects }
func (s *store) Units() ports.UnitRepository           { return s.units }
func (s *store) AuditLog() ports.AuditRepository       { return s.audit }
