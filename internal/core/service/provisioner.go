package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/core/schema"
)

// Provisioner applies the fixed structural step lists. Every step is
// idempotent, so provisioning an already provisioned namespace is a no-op.
type Provisioner struct {
	target ports.SchemaTarget
	rootNS domain.Namespace
	logger zerolog.Logger
}

func NewProvisioner(target ports.SchemaTarget, rootNS domain.Namespace, logger zerolog.Logger) *Provisioner {
	return &Provisioner{target: target, rootNS: rootNS, logger: logger}
}

// Provision materialises the tenant structure inside ns.
func (p *Provisioner) Provision(ctx context.Context, ns domain.Namespace) error {
	if !ns.IsTenant() {
		return &domain.ProvisioningError{Namespace: ns, Err: domain.ErrInvalidNamespace}
	}
	return p.apply(ctx, ns, schema.Tenant)
}

// ProvisionRoot materialises the root structure. It never touches tenant
// namespaces.
func (p *Provisioner) ProvisionRoot(ctx context.Context) error {
	return p.apply(ctx, p.rootNS, schema.Root)
}

func (p *Provisioner) apply(ctx context.Context, ns domain.Namespace, steps []schema.Step) error {
	applied, err := p.target.AppliedVersions(ctx, ns)
	if err != nil {
		return &domain.ProvisioningError{Namespace: ns, Step: "read_versions", Err: err}
	}

	for _, step := range steps {
		if err := p.applyStep(ctx, ns, step, applied[step.Version]); err != nil {
			return &domain.ProvisioningError{Namespace: ns, Step: step.Name, Err: err}
		}
	}
	return nil
}

func (p *Provisioner) applyStep(ctx context.Context, ns domain.Namespace, step schema.Step, recorded bool) error {
	exists, err := p.target.HasCollection(ctx, ns, step.Collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", step.Collection, err)
	}
	if !exists {
		if err := p.target.CreateCollection(ctx, ns, step.Collection); err != nil {
			return fmt.Errorf("create collection %s: %w", step.Collection, err)
		}
	}

	// Indexes are re-ensured even for recorded steps so a partially applied
	// step from an interrupted run is completed.
	if err := p.target.EnsureIndexes(ctx, ns, step.Collection, step.Indexes); err != nil {
		return fmt.Errorf("ensure indexes on %s: %w", step.Collection, err)
	}

	if recorded {
		return nil
	}
	if err := p.target.RecordVersion(ctx, ns, step); err != nil {
		return fmt.Errorf("record version %d: %w", step.Version, err)
	}

	p.logger.Debug().
		Str("namespace", ns.String()).
		Int("version", step.Version).
		Str("step", step.Name).
		Msg("schema step applied")
	return nil
}
