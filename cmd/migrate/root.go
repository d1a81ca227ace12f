package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/service"
	mongodb "github.com/buildhub/property-api/internal/infrastructure/db/mongo"
	"github.com/buildhub/property-api/internal/infrastructure/security"
	"github.com/buildhub/property-api/internal/pkg/config"
	"github.com/buildhub/property-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply namespace structure to the root and tenant databases",
		SilenceUsage: true,
	}
	cmd.AddCommand(newRootSchemaCmd())
	cmd.AddCommand(newTenantCmd())
	return cmd
}

// env is what every subcommand works against.
type env struct {
	cfg         *config.Config
	log         zerolog.Logger
	client      *mongo.Client
	provisioner *service.Provisioner
	stores      *mongodb.StoreFactory
	tenants     *mongodb.TenantRepository
	registry    *mongodb.NamespaceRegistry
}

func connect(ctx context.Context) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "migrate"})

	client, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, AppName: "property-migrate", Timeout: cfg.Mongo.Timeout})
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:         cfg,
		log:         log,
		client:      client,
		provisioner: service.NewProvisioner(mongodb.NewSchemaTarget(client), domain.Namespace(cfg.Mongo.RootDatabase), log),
		stores:      mongodb.NewStoreFactory(client, cfg.Mongo.RootDatabase),
		tenants:     mongodb.NewTenantRepository(client.Database(cfg.Mongo.RootDatabase)),
		registry:    mongodb.NewNamespaceRegistry(client),
	}, nil
}

func (e *env) close() {
	_ = e.client.Disconnect(context.Background())
}

func newRootSchemaCmd() *cobra.Command {
	var skipBootstrap bool

	cmd := &cobra.Command{
		Use:   "root",
		Short: "Apply root structure and bootstrap the first super admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.provisioner.ProvisionRoot(cmd.Context()); err != nil {
				return err
			}
			e.log.Info().Str("namespace", e.cfg.Mongo.RootDatabase).Msg("root structure applied")

			b := e.cfg.Bootstrap
			if skipBootstrap || b.Email == "" {
				return nil
			}
			auth := service.NewAuthService(nil, e.stores, security.NewBcryptHasher(e.cfg.BcryptCost), nil, e.log)
			admin, err := auth.BootstrapSuperAdmin(cmd.Context(), b.Name, b.Email, b.Password)
			if err != nil {
				return fmt.Errorf("bootstrap super admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "super admin %s (id %d) ready\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Do not create the super admin from BOOTSTRAP_ADMIN_*")
	return cmd
}

func newTenantCmd() *cobra.Command {
	var (
		namespace string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Apply tenant structure to one namespace or to every active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := tenantTargets(namespace, all)
			if err != nil {
				return err
			}

			e, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if all {
				active, err := service.NewLookup(e.tenants, e.registry, e.stores, e.log).ActiveNamespaces(cmd.Context())
				if err != nil {
					return err
				}
				for _, tn := range active {
					targets = append(targets, tn.Namespace)
				}
			}

			return migrateTenants(cmd.Context(), e.provisioner, targets, e.log, cmd)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Tenant namespace, e.g. namespace_12")
	cmd.Flags().BoolVar(&all, "all", false, "Every provisioned namespace of an active tenant")
	cmd.MarkFlagsMutuallyExclusive("namespace", "all")
	cmd.MarkFlagsOneRequired("namespace", "all")
	return cmd
}
