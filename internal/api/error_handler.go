package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// accessDenied is the single body used for every request-scoping rejection.
const accessDenied = "access denied"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes, logs unexpected errors without leaking them, and
// renders {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Provisioning failures are server-side even when they wrap a tenant
	// lookup sentinel.
	if errors.Is(err, domain.ErrProvisioning) {
		return internalError(err, log, c)
	}

	if domain.IsResolutionFailure(err) {
		return http.StatusForbidden, errorResponse{Error: accessDenied}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: domain.ErrValidation.Error(), Fields: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidNamespace):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: accessDenied}
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, errorResponse{Error: "project not found"}
	case errors.Is(err, domain.ErrUnitNotFound):
		return http.StatusNotFound, errorResponse{Error: "unit not found"}
	case errors.Is(err, domain.ErrPrincipalExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	case errors.Is(err, domain.ErrProjectExists):
		return http.StatusConflict, errorResponse{Error: "project already exists"}
	case errors.Is(err, domain.ErrUnitExists):
		return http.StatusConflict, errorResponse{Error: "unit already exists"}
	case errors.Is(err, domain.ErrProjectHasUnits):
		return http.StatusConflict, errorResponse{Error: "project still has units"}
	case errors.Is(err, domain.ErrNamespaceCollision):
		return http.StatusConflict, errorResponse{Error: "namespace already registered"}
	case errors.Is(err, domain.ErrOnboardingInFlight):
		return http.StatusConflict, errorResponse{Error: "onboarding already in progress"}
	case errors.Is(err, domain.ErrTenantIncomplete):
		return http.StatusConflict, errorResponse{Error: "tenant onboarding incomplete"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	return internalError(err, log, c)
}

// internalError logs the real cause and returns a generic message.
func internalError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	event := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path())
	var pe *domain.ProvisioningError
	if errors.As(err, &pe) {
		event = event.Str("namespace", pe.Namespace.String()).Str("step", pe.Step)
	}
	event.Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
