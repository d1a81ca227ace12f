package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// UnitHandler serves units. Creation and listing are nested under a project.
type UnitHandler struct {
	service ports.UnitService
}

func NewUnitHandler(service ports.UnitService) *UnitHandler {
	return &UnitHandler{service: service}
}

type createUnitRequest struct {
	UnitNumber string  `json:"unit_number"`
	Floor      int     `json:"floor"`
	Type       string  `json:"type"`
	AreaSqft   float64 `json:"area_sqft"`
	Price      float64 `json:"price"`
}

type updateUnitRequest struct {
	UnitNumber *string  `json:"unit_number"`
	Floor      *int     `json:"floor"`
	Type       *string  `json:"type"`
	AreaSqft   *float64 `json:"area_sqft"`
	Price      *float64 `json:"price"`
}

type changeUnitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved sold"`
}

// Create handles POST /v1/projects/:id/units.
//
// @Summary      Create a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Project ID"
// @Param        body  body      createUnitRequest  true  "Unit"
// @Success      201   {object}  domain.Unit
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/units [post]
func (h *UnitHandler) Create(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req createUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	u, err := h.service.Create(c.Request().Context(), scope, ports.CreateUnitInput{
		ProjectID:  projectID,
		UnitNumber: strings.TrimSpace(req.UnitNumber),
		Floor:      req.Floor,
		Type:       strings.TrimSpace(req.Type),
		AreaSqft:   req.AreaSqft,
		Price:      req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// List handles GET /v1/projects/:id/units.
//
// @Summary      List units of a project
// @Tags         units
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int     true   "Project ID"
// @Param        status  query     string  false  "available, reserved or sold"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/projects/{id}/units [get]
func (h *UnitHandler) List(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	page, limit := pagination(c)

	units, total, err := h.service.List(c.Request().Context(), scope, ports.UnitFilter{
		ProjectID: projectID,
		Status:    c.QueryParam("status"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Data: units, Page: page, Limit: limit, Total: total})
}

// Get handles GET /v1/units/:id.
//
// @Summary      Get a unit
// @Tags         units
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Unit ID"
// @Success      200  {object}  domain.Unit
// @Failure      404  {object}  errorResponse
// @Router       /v1/units/{id} [get]
func (h *UnitHandler) Get(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	u, err := h.service.Get(c.Request().Context(), scope, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PATCH /v1/units/:id.
//
// @Summary      Update a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Unit ID"
// @Param        body  body      updateUnitRequest  true  "Fields to change"
// @Success      200   {object}  domain.Unit
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/units/{id} [patch]
func (h *UnitHandler) Update(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	u, err := h.service.Update(c.Request().Context(), scope, ports.UpdateUnitInput{
		ID:         id,
		UnitNumber: req.UnitNumber,
		Floor:      req.Floor,
		Type:       req.Type,
		AreaSqft:   req.AreaSqft,
		Price:      req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// ChangeStatus handles PATCH /v1/units/:id/status.
//
// @Summary      Change unit status
// @Tags         units
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Unit ID"
// @Param        body  body      changeUnitStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Unit
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/units/{id}/status [patch]
func (h *UnitHandler) ChangeStatus(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req changeUnitStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.ChangeStatus(c.Request().Context(), scope, id, domain.UnitStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /v1/units/:id.
//
// @Summary      Delete a unit
// @Tags         units
// @Security     BearerAuth
// @Param        id   path  int  true  "Unit ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/units/{id} [delete]
func (h *UnitHandler) Delete(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), scope, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
