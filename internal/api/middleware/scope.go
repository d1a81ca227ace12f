package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/pkg/logger"
)

// Scope resolves the namespace of the request before any handler runs.
// Handlers behind it receive a validated ports.Scope and never see claims.
func Scope(resolver ports.RequestResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			scope, err := resolver.Resolve(c.Request().Context(), *claims)
			if err != nil {
				if domain.IsResolutionFailure(err) {
					log.Warn().
						Err(err).
						Int64("principal_id", claims.PrincipalID).
						Str("path", c.Path()).
						Msg("request scope rejected")
				}
				return err
			}

			scoped := logger.WithScope(log, scope.Request.Namespace.String(), scope.Request.TenantID, scope.Request.PrincipalID)
			scoped.Debug().
				Str("role", string(scope.Request.Role)).
				Str("path", c.Path()).
				Msg("request scope resolved")

			c.Set(ContextKeyScope, scope)
			c.Set(ContextKeyRole, string(scope.Request.Role))
			return next(c)
		}
	}
}

// TenantOnly rejects requests resolved to the root namespace.
func TenantOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := ScopeFrom(c)
			if !ok || scope.Request.IsRoot() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// ScopeFrom returns the scope attached by Scope.
func ScopeFrom(c echo.Context) (ports.Scope, bool) {
	scope, ok := c.Get(ContextKeyScope).(ports.Scope)
	return scope, ok && scope.Store != nil
}
