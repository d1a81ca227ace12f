package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/buildhub/property-api/docs"
	"github.com/buildhub/property-api/internal/api/handler"
	"github.com/buildhub/property-api/internal/api/middleware"
	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth       ports.AuthService
	Onboarding ports.OnboardingService
	Tenants    ports.TenantAdminService
	Projects   ports.ProjectService
	Units      ports.UnitService
	Users      ports.UserService
	Audit      ports.AuditService

	Tokens   ports.TokenParser
	Resolver ports.RequestResolver
	Health   []handler.DependencyCheck
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every authenticated route runs Auth then Scope, so no handler reaches a
// store before the request namespace is resolved.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())

	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(deps.Tokens),
		middleware.Scope(deps.Resolver, deps.Logger),
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	tenantHandler := handler.NewTenantHandler(deps.Onboarding, deps.Tenants)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	unitHandler := handler.NewUnitHandler(deps.Units)
	userHandler := handler.NewUserHandler(deps.Users)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	healthHandler := handler.NewHealthHandler(deps.Health...)

	// --- Public ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/auth/login", authHandler.Login)
	e.POST("/admin/auth/login", authHandler.AdminLogin)
	e.GET("/auth/me", authHandler.Me, authenticated...)

	// --- Platform administration (root namespace) ---
	admin := e.Group("/admin", authenticated...)
	admin.Use(middleware.RBAC(domain.RoleSuperAdmin))
	admin.POST("/tenants", tenantHandler.Onboard)
	admin.GET("/tenants", tenantHandler.List)
	admin.GET("/tenants/:id", tenantHandler.Get)
	admin.PATCH("/tenants/:id", tenantHandler.Update)
	admin.POST("/tenants/:id/deactivate", tenantHandler.Deactivate)
	admin.POST("/tenants/:id/activate", tenantHandler.Activate)
	admin.GET("/stats", tenantHandler.Stats)

	// --- Tenant namespace ---
	v1 := e.Group("/v1", authenticated...)
	v1.Use(middleware.TenantOnly())

	anyTenantRole := middleware.RBAC(domain.RoleTenantAdmin, domain.RoleSalesManager, domain.RoleSalesAgent)
	managers := middleware.RBAC(domain.RoleTenantAdmin, domain.RoleSalesManager)
	admins := middleware.RBAC(domain.RoleTenantAdmin)

	v1.GET("/projects", projectHandler.List, anyTenantRole)
	v1.POST("/projects", projectHandler.Create, managers)
	v1.GET("/projects/:id", projectHandler.Get, anyTenantRole)
	v1.PATCH("/projects/:id", projectHandler.Update, managers)
	v1.DELETE("/projects/:id", projectHandler.Delete, admins)

	v1.GET("/projects/:id/units", unitHandler.List, anyTenantRole)
	v1.POST("/projects/:id/units", unitHandler.Create, managers)
	v1.GET("/units/:id", unitHandler.Get, anyTenantRole)
	v1.PATCH("/units/:id", unitHandler.Update, managers)
	v1.PATCH("/units/:id/status", unitHandler.ChangeStatus, anyTenantRole)
	v1.DELETE("/units/:id", unitHandler.Delete, admins)

	v1.GET("/users", userHandler.List, managers)
	v1.POST("/users", userHandler.Create, managers)
	v1.GET("/users/:id", userHandler.Get, managers)
	v1.PATCH("/users/:id", userHandler.Update, anyTenantRole)

	v1.GET("/audit-logs", auditHandler.List, admins)

	return e
}
