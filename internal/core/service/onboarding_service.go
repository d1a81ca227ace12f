package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/metrics"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

// OnboardingService creates a tenant record, its namespace and its first
// administrator as one unit. A tenant record only becomes active after every
// step succeeded; failures delete the inactive record and drop a namespace
// created by the same attempt.
type OnboardingService struct {
	tenants     ports.TenantRepository
	registry    ports.NamespaceRegistry
	provisioner ports.NamespaceProvisioner
	stores      ports.StoreFactory
	hasher      ports.PasswordHasher
	guard       ports.OnboardingGuard
	logger      zerolog.Logger
}

func NewOnboardingService(
	tenants ports.TenantRepository,
	registry ports.NamespaceRegistry,
	provisioner ports.NamespaceProvisioner,
	stores ports.StoreFactory,
	hasher ports.PasswordHasher,
	guard ports.OnboardingGuard,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		tenants:     tenants,
		registry:    registry,
		provisioner: provisioner,
		stores:      stores,
		hasher:      hasher,
		guard:       guard,
		logger:      logger,
	}
}

// Onboard runs the onboarding sequence. When an idempotency key is supplied
// and a previous attempt with the same key completed, the tenant created by
// that attempt is returned without side effects.
func (s *OnboardingService) Onboard(ctx context.Context, input ports.OnboardTenantInput) (*ports.OnboardResult, error) {
	start := time.Now()

	if err := validateOnboarding(input); err != nil {
		metrics.OnboardingsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	guarded := false
	if input.IdempotencyKey != "" && s.guard != nil {
		replayID, err := s.guard.Begin(ctx, input.IdempotencyKey)
		switch {
		case errors.Is(err, domain.ErrOnboardingInFlight):
			return nil, err
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("onboarding guard unavailable, continuing unguarded")
		case replayID > 0:
			tenant, err := s.tenants.FindByID(ctx, replayID)
			if err != nil {
				return nil, fmt.Errorf("load replayed tenant: %w", err)
			}
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("tenant_id", tenant.ID).Msg("idempotent replay")
			metrics.OnboardingsTotal.WithLabelValues("replayed").Inc()
			return &ports.OnboardResult{Tenant: tenant, Replayed: true}, nil
		default:
			guarded = true
		}
	}

	result, err := s.onboard(ctx, input)

	if guarded {
		gctx := context.WithoutCancel(ctx)
		if err != nil {
			if gerr := s.guard.Abort(gctx, input.IdempotencyKey); gerr != nil {
				s.logger.Warn().Err(gerr).Str("idempotency_key", input.IdempotencyKey).Msg("release onboarding guard")
			}
		} else if gerr := s.guard.Complete(gctx, input.IdempotencyKey, result.Tenant.ID); gerr != nil {
			s.logger.Warn().Err(gerr).Str("idempotency_key", input.IdempotencyKey).Msg("record onboarding completion")
		}
	}

	metrics.OnboardingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		label := "failed"
		if errors.Is(err, domain.ErrNamespaceCollision) {
			label = "collision"
		}
		metrics.OnboardingsTotal.WithLabelValues(label).Inc()
		return nil, err
	}
	metrics.OnboardingsTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (s *OnboardingService) onboard(ctx context.Context, input ports.OnboardTenantInput) (*ports.OnboardResult, error) {
	now := time.Now().UTC()
	record, err := s.tenants.Insert(ctx, &domain.Tenant{
		Name:             strings.TrimSpace(input.Tenant.Name),
		ContactEmail:     domain.NormalizeEmail(input.Tenant.ContactEmail),
		ContactPhone:     strings.TrimSpace(input.Tenant.ContactPhone),
		SubscriptionTier: domain.SubscriptionTier(input.Tenant.SubscriptionTier),
		Namespace:        domain.PlaceholderNamespace(),
		Active:           false,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("insert tenant record: %w", err)
	}

	ns := domain.NamespaceForTenant(record.ID)
	log := s.logger.With().Int64("tenant_id", record.ID).Str("namespace", ns.String()).Logger()

	nsCreated := false
	fail := func(cause error) (*ports.OnboardResult, error) {
		log.Error().Err(cause).Msg("onboarding failed, rolling back")
		s.rollback(ctx, log, record.ID, ns, nsCreated)
		return nil, cause
	}

	if err := s.tenants.SetNamespace(ctx, record.ID, ns); err != nil {
		return fail(&domain.ProvisioningError{Namespace: ns, Step: "assign_namespace", Err: err})
	}

	exists, err := s.registry.Exists(ctx, ns)
	if err != nil {
		return fail(&domain.ProvisioningError{Namespace: ns, Step: "check_namespace", Err: err})
	}
	if exists {
		// The namespace belongs to something else; it is never dropped here.
		return fail(fmt.Errorf("%w: %s", domain.ErrNamespaceCollision, ns))
	}

	nsCreated = true
	if err := s.registry.Register(ctx, ns); err != nil {
		return fail(err)
	}
	if err := s.provisioner.Provision(ctx, ns); err != nil {
		return fail(err)
	}

	store, err := s.stores.Tenant(ns)
	if err != nil {
		return fail(err)
	}
	hash, err := s.hasher.Hash(input.Admin.Password)
	if err != nil {
		return fail(fmt.Errorf("hash admin password: %w", err))
	}
	admin, err := store.Principals().Create(ctx, &domain.Principal{
		Name:         strings.TrimSpace(input.Admin.Name),
		Email:        domain.NormalizeEmail(input.Admin.Email),
		Phone:        strings.TrimSpace(input.Admin.Phone),
		PasswordHash: hash,
		Role:         domain.RoleTenantAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fail(fmt.Errorf("create tenant admin: %w", err))
	}

	if err := s.tenants.SetActive(ctx, record.ID, true); err != nil {
		if !s.activated(ctx, record.ID, ns) {
			return fail(&domain.ProvisioningError{Namespace: ns, Step: "activate", Err: err})
		}
		log.Warn().Err(err).Msg("activation reported an error but was committed")
	}

	record.Namespace = ns
	record.Active = true
	log.Info().Str("tier", string(record.SubscriptionTier)).Msg("tenant onboarded")

	return &ports.OnboardResult{Tenant: record, Admin: admin}, nil
}

// activated re-reads the tenant record after an ambiguous activation write.
// It reports true only when the record is active and holds ns.
func (s *OnboardingService) activated(ctx context.Context, tenantID int64, ns domain.Namespace) bool {
	t, err := s.tenants.FindByID(context.WithoutCancel(ctx), tenantID)
	if err != nil {
		return false
	}
	return t.Active && t.Namespace == ns
}

// rollback compensates a failed onboarding. It runs detached from the caller's
// cancellation. The namespace is dropped only after the inactive record was
// removed, so a namespace can never be dropped from under an active tenant.
func (s *OnboardingService) rollback(ctx context.Context, log zerolog.Logger, tenantID int64, ns domain.Namespace, nsCreated bool) {
	rctx := context.WithoutCancel(ctx)

	if err := s.tenants.DeleteInactive(rctx, tenantID); err != nil {
		metrics.RollbacksTotal.WithLabelValues("tenant_record", "error").Inc()
		log.Error().Err(err).Msg("rollback: delete inactive tenant record")
		return
	}
	metrics.RollbacksTotal.WithLabelValues("tenant_record", "ok").Inc()

	if !nsCreated {
		return
	}
	if err := s.registry.Drop(rctx, ns); err != nil {
		metrics.RollbacksTotal.WithLabelValues("namespace", "error").Inc()
		log.Warn().Err(err).Msg("rollback: drop namespace")
		return
	}
	metrics.RollbacksTotal.WithLabelValues("namespace", "ok").Inc()
}

func validateOnboarding(input ports.OnboardTenantInput) error {
	parts := []struct {
		prefix string
		value  any
	}{
		{"tenant.", input.Tenant},
		{"admin.", input.Admin},
	}

	var fields []string
	for _, part := range parts {
		err := validation.Struct(part.value)
		if err == nil {
			continue
		}
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, f := range ve.Fields {
			fields = append(fields, part.prefix+f)
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}
