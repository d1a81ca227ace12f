package service

import (
	"context"
	"errors"
	"testing"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

func mustOnboard(t *testing.T, f *fixture, name, email string) *ports.OnboardResult {
	t.Helper()
	res, err := f.onboarding.Onboard(context.Background(), onboardInput(name, email))
	if err != nil {
		t.Fatalf("onboard %s: %v", name, err)
	}
	return res
}

func addPrincipal(t *testing.T, store ports.NamespaceStore, email string, role domain.Role, active bool) *domain.Principal {
	t.Helper()
	p, err := store.Principals().Create(context.Background(), &domain.Principal{
		Name:         email,
		Email:        email,
		PasswordHash: "hashed:pw-" + email,
		Role:         role,
		Active:       active,
	})
	if err != nil {
		t.Fatalf("create principal %s: %v", email, err)
	}
	return p
}

func TestResolver_TenantContext(t *testing.T) {
	f := newFixture()
	res := mustOnboard(t, f, "Acme", "alice@acme.test")

	scope, err := f.resolver.Resolve(context.Background(), tenantClaims(res.Tenant, res.Admin.ID, domain.RoleTenantAdmin))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if scope.Request.Namespace != res.Tenant.Namespace || scope.Request.TenantID != res.Tenant.ID {
		t.Fatalf("unexpected request context: %+v", scope.Request)
	}
	if scope.Store.Namespace() != res.Tenant.Namespace {
		t.Fatalf("store bound to %s, want %s", scope.Store.Namespace(), res.Tenant.Namespace)
	}
	if scope.Request.Role != domain.RoleTenantAdmin {
		t.Fatalf("unexpected role %s", scope.Request.Role)
	}
}

func TestResolver_RoleComesFromStoreNotToken(t *testing.T) {
	f := newFixture()
	res := mustOnboard(t, f, "Acme", "alice@acme.test")
	store, _ := f.world.Tenant(res.Tenant.Namespace)
	agent := addPrincipal(t, store, "agent@acme.test", domain.RoleSalesAgent, true)

	scope, err := f.resolver.Resolve(context.Background(), tenantClaims(res.Tenant, agent.ID, domain.RoleTenantAdmin))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if scope.Request.Role != domain.RoleSalesAgent {
		t.Fatalf("expected stored role sales_agent, got %s", scope.Request.Role)
	}
}

func TestResolver_SuspensionIsImmediate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res := mustOnboard(t, f, "Acme", "alice@acme.test")
	claims := tenantClaims(res.Tenant, res.Admin.ID, domain.RoleTenantAdmin)

	if _, err := f.resolver.Resolve(ctx, claims); err != nil {
		t.Fatalf("Resolve before suspension: %v", err)
	}
	if err := f.tenants.SetActive(ctx, res.Tenant.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := f.resolver.Resolve(ctx, claims); !errors.Is(err, domain.ErrTenantSuspended) {
		t.Fatalf("expected ErrTenantSuspended, got %v", err)
	}
}

func TestResolver_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acme := mustOnboard(t, f, "Acme", "alice@acme.test")
	beta := mustOnboard(t, f, "Beta", "bob@beta.test")

	acmeStore, _ := f.world.Tenant(acme.Tenant.Namespace)
	retired := addPrincipal(t, acmeStore, "retired@acme.test", domain.RoleSalesAgent, false)

	id := acme.Tenant.ID
	missing := int64(404)
	zero := int64(0)

	cases := []struct {
		name   string
		claims ports.TokenClaims
		want   error
	}{
		{"tenant id without namespace", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &id}, domain.ErrMalformedContext},
		{"namespace without tenant id", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, Namespace: "namespace_1"}, domain.ErrMalformedContext},
		{"tenant role without tenant fields", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin}, domain.ErrMalformedContext},
		{"super admin with tenant fields", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleSuperAdmin, TenantID: &id, Namespace: "namespace_1"}, domain.ErrMalformedContext},
		{"root namespace claimed as tenant", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &id, Namespace: string(testRootNS)}, domain.ErrMalformedContext},
		{"injection-shaped namespace", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &id, Namespace: "namespace_1; drop"}, domain.ErrMalformedContext},
		{"zero tenant id", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &zero, Namespace: "namespace_1"}, domain.ErrMalformedContext},
		{"missing principal id", ports.TokenClaims{Role: domain.RoleTenantAdmin, TenantID: &id, Namespace: "namespace_1"}, domain.ErrMalformedContext},
		{"unknown tenant", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &missing, Namespace: "namespace_404"}, domain.ErrTenantNotFound},
		{"namespace of another tenant", ports.TokenClaims{PrincipalID: 1, Role: domain.RoleTenantAdmin, TenantID: &id, Namespace: beta.Tenant.Namespace.String()}, domain.ErrTenantNotFound},
		{"inactive principal", tenantClaims(acme.Tenant, retired.ID, domain.RoleSalesAgent), domain.ErrPrincipalInactive},
		{"principal of another namespace", tenantClaims(acme.Tenant, 99, domain.RoleTenantAdmin), domain.ErrPrincipalInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := f.resolver.Resolve(ctx, tc.claims)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !domain.IsResolutionFailure(err) {
				t.Fatalf("%v must be classified as a resolution failure", err)
			}
			if scope.Store != nil {
				t.Fatalf("rejected resolution must not expose a store")
			}
		})
	}
}

func TestResolver_RootContext(t *testing.T) {
	f := newFixture()
	admin := addPrincipal(t, f.world.Root(), "ops@platform.test", domain.RoleSuperAdmin, true)

	scope, err := f.resolver.Resolve(context.Background(), ports.TokenClaims{PrincipalID: admin.ID, Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !scope.Request.IsRoot() || scope.Request.Namespace != testRootNS {
		t.Fatalf("expected root context, got %+v", scope.Request)
	}
	if scope.Store.Namespace() != testRootNS {
		t.Fatalf("expected root store")
	}
}

func TestResolver_RootPrincipalMustBeSuperAdmin(t *testing.T) {
	f := newFixture()
	p := addPrincipal(t, f.world.Root(), "odd@platform.test", domain.RoleSalesAgent, true)

	_, err := f.resolver.Resolve(context.Background(), ports.TokenClaims{PrincipalID: p.ID, Role: domain.RoleSuperAdmin})
	if !errors.Is(err, domain.ErrMalformedContext) {
		t.Fatalf("expected ErrMalformedContext, got %v", err)
	}
}
