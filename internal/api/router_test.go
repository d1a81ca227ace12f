package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

type stubTokens struct{ claims ports.TokenClaims }

func (s stubTokens) Parse(token string) (*ports.TokenClaims, error) {
	if token != "valid" {
		return nil, domain.ErrInvalidCredentials
	}
	c := s.claims
	return &c, nil
}

type stubResolver struct {
	scope ports.Scope
	err   error
}

func (s stubResolver) Resolve(context.Context, ports.TokenClaims) (ports.Scope, error) {
	return s.scope, s.err
}

type stubStore struct {
	ports.NamespaceStore
	ns domain.Namespace
}

func (s stubStore) Namespace() domain.Namespace { return s.ns }

type stubProjects struct{ ports.ProjectService }

func (stubProjects) List(_ context.Context, _ ports.Scope, _ ports.ProjectFilter) ([]*domain.Project, int64, error) {
	return []*domain.Project{}, 0, nil
}

func tenantScope(role domain.Role) ports.Scope {
	return ports.Scope{
		Request: domain.RequestContext{Namespace: "namespace_2", TenantID: 2, PrincipalID: 7, Role: role},
		Store:   stubStore{ns: "namespace_2"},
	}
}

func rootScope() ports.Scope {
	return ports.Scope{
		Request: domain.RequestContext{Namespace: "property_root", PrincipalID: 1, Role: domain.RoleSuperAdmin},
		Store:   stubStore{ns: "property_root"},
	}
}

func serve(resolver stubResolver, method, path string, authorized bool) *httptest.ResponseRecorder {
	e := NewRouter(Dependencies{
		Projects: stubProjects{},
		Tokens:   stubTokens{},
		Resolver: resolver,
		Logger:   zerolog.Nop(),
	})
	req := httptest.NewRequest(method, path, nil)
	if authorized {
		req.Header.Set("Authorization", "Bearer valid")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	if rec := serve(stubResolver{}, http.MethodGet, "/health", false); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /health, got %d", rec.Code)
	}
	if rec := serve(stubResolver{}, http.MethodGet, "/metrics", false); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /metrics, got %d", rec.Code)
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	if rec := serve(stubResolver{scope: tenantScope(domain.RoleTenantAdmin)}, http.MethodGet, "/v1/projects", false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_TenantRouteResolved(t *testing.T) {
	rec := serve(stubResolver{scope: tenantScope(domain.RoleSalesAgent)}, http.MethodGet, "/v1/projects", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ResolutionFailuresShareOneResponse(t *testing.T) {
	var bodies []string
	for _, err := range []error{domain.ErrTenantSuspended, domain.ErrTenantNotFound, domain.ErrMalformedContext, domain.ErrPrincipalInactive} {
		rec := serve(stubResolver{err: err}, http.MethodGet, "/v1/projects", true)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%v: expected 403, got %d", err, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("resolution failures must be indistinguishable: %q vs %q", bodies[0], b)
		}
	}
}

func TestRouter_RootScopeCannotUseTenantRoutes(t *testing.T) {
	if rec := serve(stubResolver{scope: rootScope()}, http.MethodGet, "/v1/projects", true); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_TenantScopeCannotUseAdminRoutes(t *testing.T) {
	if rec := serve(stubResolver{scope: tenantScope(domain.RoleTenantAdmin)}, http.MethodGet, "/admin/tenants", true); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_RoleGates(t *testing.T) {
	if rec := serve(stubResolver{scope: tenantScope(domain.RoleSalesAgent)}, http.MethodGet, "/v1/audit-logs", true); rec.Code != http.StatusForbidden {
		t.Fatalf("sales agent must not read audit logs, got %d", rec.Code)
	}
	if rec := serve(stubResolver{scope: tenantScope(domain.RoleSalesAgent)}, http.MethodPost, "/v1/projects", true); rec.Code != http.StatusForbidden {
		t.Fatalf("sales agent must not create projects, got %d", rec.Code)
	}
}
