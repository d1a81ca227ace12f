package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

const defaultStatsConcurrency = 4

// TenantService implements the platform administration of tenant records.
// It never changes a tenant's namespace.
type TenantService struct {
	tenants     ports.TenantRepository
	registry    ports.NamespaceRegistry
	lookup      ports.NamespaceLookup
	stores      ports.StoreFactory
	concurrency int
	logger      zerolog.Logger
}

func NewTenantService(
	tenants ports.TenantRepository,
	registry ports.NamespaceRegistry,
	lookup ports.NamespaceLookup,
	stores ports.StoreFactory,
	concurrency int,
	logger zerolog.Logger,
) *TenantService {
	if concurrency <= 0 {
		concurrency = defaultStatsConcurrency
	}
	return &TenantService{
		tenants:     tenants,
		registry:    registry,
		lookup:      lookup,
		stores:      stores,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (s *TenantService) List(ctx context.Context, filter ports.TenantFilter) ([]*domain.Tenant, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.tenants.List(ctx, filter)
}

func (s *TenantService) Get(ctx context.Context, id int64) (*domain.Tenant, error) {
	return s.tenants.FindByID(ctx, id)
}

func (s *TenantService) Update(ctx context.Context, input ports.UpdateTenantInput) (*domain.Tenant, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	t, err := s.tenants.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.ContactEmail != nil {
		t.ContactEmail = domain.NormalizeEmail(*input.ContactEmail)
	}
	if input.ContactPhone != nil {
		t.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	if input.SubscriptionTier != nil {
		t.SubscriptionTier = domain.SubscriptionTier(*input.SubscriptionTier)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.tenants.UpdateMetadata(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Deactivate suspends a tenant. Subsequent requests carrying its context are
// rejected by the resolver; its namespace and data are kept.
func (s *TenantService) Deactivate(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Ready() {
		return nil, domain.ErrTenantIncomplete
	}
	if !t.Active {
		return t, nil
	}
	if err := s.tenants.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	t.Active = false
	s.logger.Info().Int64("tenant_id", id).Msg("tenant deactivated")
	return t, nil
}

// Activate reactivates a suspended tenant. Records whose onboarding never
// completed cannot be activated.
func (s *TenantService) Activate(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Ready() {
		return nil, domain.ErrTenantIncomplete
	}
	if t.Active {
		return t, nil
	}
	exists, err := s.registry.Exists(ctx, t.Namespace)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTenantIncomplete
	}
	if err := s.tenants.SetActive(ctx, id, true); err != nil {
		return nil, err
	}
	t.Active = true
	s.logger.Info().Int64("tenant_id", id).Msg("tenant activated")
	return t, nil
}

// Stats aggregates per-namespace counts over all active tenants. Each
// namespace is queried through its own scoped store; a namespace that fails
// is reported with an error marker instead of failing the whole report.
func (s *TenantService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	namespaces, err := s.lookup.ActiveNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ports.TenantStats, len(namespaces))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, tn := range namespaces {
		i, tn := i, tn
		g.Go(func() error {
			st := &ports.TenantStats{TenantID: tn.TenantID, Name: tn.Name, Namespace: tn.Namespace}
			if err := s.countNamespace(gctx, tn.Namespace, st); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn().Err(err).Str("namespace", tn.Namespace.String()).Msg("stats: namespace unavailable")
				st.Error = "unavailable"
			}
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ports.PlatformStats{ActiveTenants: int64(len(results)), Tenants: results}
	for _, st := range results {
		out.Principals += st.Principals
		out.Projects += st.Projects
		out.Units += st.Units
	}
	return out, nil
}

func (s *TenantService) countNamespace(ctx context.Context, ns domain.Namespace, st *ports.TenantStats) error {
	store, err := s.stores.Tenant(ns)
	if err != nil {
		return err
	}
	if st.Principals, err = store.Principals().Count(ctx); err != nil {
		return err
	}
	if st.Projects, err = store.Projects().Count(ctx); err != nil {
		return err
	}
	if st.Units, err = store.Units().Count(ctx); err != nil {
		return err
	}
	return nil
}
