package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	Principal *domain.Principal `json:"principal"`
	TenantID  int64             `json:"tenant_id,omitempty"`
	Namespace domain.Namespace  `json:"namespace"`
}

type meResponse struct {
	Context   domain.RequestContext `json:"context"`
	Principal *domain.Principal     `json:"principal"`
}

// Login authenticates a tenant principal. The caller does not supply a
// tenant; it is discovered from the login identifier.
//
// @Summary      Tenant login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, h.authService.Login)
}

// AdminLogin authenticates a platform administrator against the root namespace.
//
// @Summary      Super admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/auth/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, h.authService.LoginSuperAdmin)
}

func (h *AuthHandler) login(c echo.Context, fn func(ctx context.Context, email, password string) (*ports.LoginResult, error)) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := fn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		Principal: res.Principal,
		TenantID:  res.TenantID,
		Namespace: res.Namespace,
	})
}

// Me returns the resolved request context and the acting principal.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}

	p, err := h.authService.Profile(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Context: scope.Request, Principal: p})
}
