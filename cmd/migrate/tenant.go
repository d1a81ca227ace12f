package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// tenantTargets validates the flags before anything is opened.
func tenantTargets(namespace string, all bool) ([]domain.Namespace, error) {
	if all {
		return nil, nil
	}
	ns, err := domain.ParseTenantNamespace(namespace)
	if err != nil {
		return nil, err
	}
	return []domain.Namespace{ns}, nil
}

// migrateTenants applies the tenant structure to each namespace in turn and
// keeps going past failures so one broken namespace does not block the rest.
func migrateTenants(ctx context.Context, p ports.NamespaceProvisioner, targets []domain.Namespace, log zerolog.Logger, cmd *cobra.Command) error {
	var failed int
	for _, ns := range targets {
		if err := p.Provision(ctx, ns); err != nil {
			failed++
			log.Error().Err(err).Str("namespace", ns.String()).Msg("tenant migration failed")
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: up to date\n", ns)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d namespaces failed", failed, len(targets))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d namespaces migrated\n", len(targets))
	return nil
}
