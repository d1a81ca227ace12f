package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/core/ports"
)

type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /v1/audit-logs.
//
// @Summary      List audit entries
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        entity_type  query     string  false  "project, unit or principal"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listResponse
// @Failure      403          {object}  errorResponse
// @Router       /v1/audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	page, limit := pagination(c)

	entries, total, err := h.service.List(c.Request().Context(), scope, ports.AuditFilter{
		EntityType: c.QueryParam("entity_type"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Data: entries, Page: page, Limit: limit, Total: total})
}
