package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/ports"
)

// Context keys set by the middleware chain.
const (
	ContextKeyClaims = "claims"
	ContextKeyScope  = "scope"
	ContextKeyRole   = "role"
)

// Auth verifies the bearer token and injects its claims into the context.
// Claims are unverified hints until Scope resolves them.
func Auth(parser ports.TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parser.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims injected by Auth.
func ClaimsFrom(c echo.Context) (*ports.TokenClaims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*ports.TokenClaims)
	return claims, ok && claims != nil
}
