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

// Lookup enumerates active tenant namespaces and searches them one scoped
// query at a time. Inactive tenants are never queried.
type Lookup struct {
	tenants  ports.TenantReader
	registry ports.NamespaceRegistry
	stores   ports.StoreFactory
	logger   zerolog.Logger
}

func NewLookup(tenants ports.TenantReader, registry ports.NamespaceRegistry, stores ports.StoreFactory, logger zerolog.Logger) *Lookup {
	return &Lookup{tenants: tenants, registry: registry, stores: stores, logger: logger}
}

// ActiveNamespaces intersects the active tenant records with the provisioned
// namespaces, ordered by tenant identity.
func (l *Lookup) ActiveNamespaces(ctx context.Context) ([]ports.TenantNamespace, error) {
	active, err := l.tenants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	provisioned, err := l.registry.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}

	exists := make(map[domain.Namespace]struct{}, len(provisioned))
	for _, ns := range provisioned {
		exists[ns] = struct{}{}
	}

	out := make([]ports.TenantNamespace, 0, len(active))
	for _, t := range active {
		if !t.Ready() {
			continue
		}
		if _, ok := exists[t.Namespace]; !ok {
			l.logger.Warn().Int64("tenant_id", t.ID).Str("namespace", t.Namespace.String()).Msg("active tenant without provisioned namespace")
			continue
		}
		out = append(out, ports.TenantNamespace{TenantID: t.ID, Name: t.Name, Namespace: t.Namespace})
	}
	return out, nil
}

// FindByLoginAcrossTenants returns the first principal, in tenant identity
// order, whose login identifier matches email. Namespaces that fail to answer
// are skipped; their error is returned only when no namespace matched.
func (l *Lookup) FindByLoginAcrossTenants(ctx context.Context, email string) (*ports.PrincipalMatch, error) {
	email = domain.NormalizeEmail(email)

	namespaces, err := l.ActiveNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	scanned := 0
	defer func() { metrics.LookupNamespacesScanned.Observe(float64(scanned)) }()

	var firstErr error
	for _, tn := range namespaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scanned++

		store, err := l.stores.Tenant(tn.Namespace)
		if err != nil {
			return nil, err
		}
		p, err := store.Principals().FindByEmail(ctx, email)
		if err == nil {
			return &ports.PrincipalMatch{TenantID: tn.TenantID, Namespace: tn.Namespace, Principal: p}, nil
		}
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			continue
		}
		l.logger.Warn().Err(err).Str("namespace", tn.Namespace.String()).Msg("lookup: namespace query failed")
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, fmt.Errorf("lookup principal: %w", firstErr)
	}
	return nil, domain.ErrPrincipalNotFound
}
