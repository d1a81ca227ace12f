package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

type stubParser struct {
	claims *ports.TokenClaims
	err    error
	got    string
}

func (s *stubParser) Parse(token string) (*ports.TokenClaims, error) {
	s.got = token
	return s.claims, s.err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tenantID := int64(4)
	parser := &stubParser{claims: &ports.TokenClaims{
		PrincipalID: 9,
		Role:        domain.RoleSalesAgent,
		TenantID:    &tenantID,
		Namespace:   "namespace_4",
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer signed")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(parser)(func(c echo.Context) error {
		called = true
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatalf("claims not set")
		}
		if claims.PrincipalID != 9 || claims.Namespace != "namespace_4" {
			t.Fatalf("unexpected claims %+v", claims)
		}
		if c.Get(ContextKeyRole) != nil {
			t.Fatalf("role must not be trusted before scope resolution")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if parser.got != "signed" {
		t.Fatalf("expected token to be passed to parser, got %q", parser.got)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"wrong scheme", "Token abc", nil},
		{"no token", "Bearer", nil},
		{"parser rejects", "Bearer abc", errors.New("expired")},
	}

	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(&stubParser{err: tc.err})(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", tc.name)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}
