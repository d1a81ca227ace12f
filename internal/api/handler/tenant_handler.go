package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// TenantHandler serves the super-admin tenant endpoints.
type TenantHandler struct {
	onboarding ports.OnboardingService
	tenants    ports.TenantAdminService
}

func NewTenantHandler(onboarding ports.OnboardingService, tenants ports.TenantAdminService) *TenantHandler {
	return &TenantHandler{onboarding: onboarding, tenants: tenants}
}

type tenantMetadataRequest struct {
	Name             string `json:"name"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	SubscriptionTier string `json:"subscription_tier"`
}

type adminCredentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type onboardTenantRequest struct {
	Tenant tenantMetadataRequest   `json:"tenant"`
	Admin  adminCredentialsRequest `json:"admin"`
}

type onboardTenantResponse struct {
	Tenant   *domain.Tenant    `json:"tenant"`
	Admin    *domain.Principal `json:"admin,omitempty"`
	Replayed bool              `json:"replayed,omitempty"`
}

type updateTenantRequest struct {
	Name             *string `json:"name"`
	ContactEmail     *string `json:"contact_email"`
	ContactPhone     *string `json:"contact_phone"`
	SubscriptionTier *string `json:"subscription_tier"`
}

// Onboard creates a tenant, its namespace and its first tenant_admin.
//
// @Summary      Onboard a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replays the tenant created by an earlier request with the same key"
// @Param        body             body      onboardTenantRequest  true   "Tenant metadata and admin credentials"
// @Success      201              {object}  onboardTenantResponse
// @Success      200              {object}  onboardTenantResponse  "Replayed"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /admin/tenants [post]
func (h *TenantHandler) Onboard(c echo.Context) error {
	var req onboardTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.onboarding.Onboard(c.Request().Context(), ports.OnboardTenantInput{
		Tenant: ports.TenantMetadataInput{
			Name:             strings.TrimSpace(req.Tenant.Name),
			ContactEmail:     strings.TrimSpace(req.Tenant.ContactEmail),
			ContactPhone:     strings.TrimSpace(req.Tenant.ContactPhone),
			SubscriptionTier: req.Tenant.SubscriptionTier,
		},
		Admin: ports.AdminCredentialsInput{
			Name:     strings.TrimSpace(req.Admin.Name),
			Email:    strings.TrimSpace(req.Admin.Email),
			Password: req.Admin.Password,
			Phone:    strings.TrimSpace(req.Admin.Phone),
		},
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get("Idempotency-Key")),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, onboardTenantResponse{Tenant: res.Tenant, Admin: res.Admin, Replayed: res.Replayed})
}

// List returns tenants page by page.
//
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool    false  "Filter by activity"
// @Param        search  query     string  false  "Partial name match"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse
// @Failure      400     {object}  errorResponse
// @Router       /admin/tenants [get]
func (h *TenantHandler) List(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	page, limit := pagination(c)

	tenants, total, err := h.tenants.List(c.Request().Context(), ports.TenantFilter{
		Active: active,
		Search: strings.TrimSpace(c.QueryParam("search")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Data: tenants, Page: page, Limit: limit, Total: total})
}

// Get returns one tenant record.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  domain.Tenant
// @Failure      404  {object}  errorResponse
// @Router       /admin/tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.tenants.Get(c.Request().Context(), id)
	if err != nil {
		return tenantError(err)
	}
	return c.JSON(http.StatusOK, t)
}

// Update changes tenant metadata. The namespace is never editable.
//
// @Summary      Update tenant metadata
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Tenant ID"
// @Param        body  body      updateTenantRequest  true  "Fields to change"
// @Success      200   {object}  domain.Tenant
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/tenants/{id} [patch]
func (h *TenantHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	t, err := h.tenants.Update(c.Request().Context(), ports.UpdateTenantInput{
		ID:               id,
		Name:             req.Name,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		SubscriptionTier: req.SubscriptionTier,
	})
	if err != nil {
		return tenantError(err)
	}
	return c.JSON(http.StatusOK, t)
}

// Deactivate suspends a tenant. Its requests are rejected from the next
// request on; its namespace is retained.
//
// @Summary      Deactivate a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  domain.Tenant
// @Failure      404  {object}  errorResponse
// @Router       /admin/tenants/{id}/deactivate [post]
func (h *TenantHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.tenants.Deactivate(c.Request().Context(), id)
	if err != nil {
		return tenantError(err)
	}
	return c.JSON(http.StatusOK, t)
}

// Activate reactivates a suspended tenant.
//
// @Summary      Activate a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  domain.Tenant
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/tenants/{id}/activate [post]
func (h *TenantHandler) Activate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.tenants.Activate(c.Request().Context(), id)
	if err != nil {
		return tenantError(err)
	}
	return c.JSON(http.StatusOK, t)
}

// Stats aggregates per-tenant counts across active namespaces.
//
// @Summary      Platform statistics
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PlatformStats
// @Failure      500  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *TenantHandler) Stats(c echo.Context) error {
	stats, err := h.tenants.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// tenantError keeps a missing tenant a plain 404 on admin routes; elsewhere
// the same sentinel is a request-scoping rejection.
func tenantError(err error) error {
	if errors.Is(err, domain.ErrTenantNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
	}
	return err
}
