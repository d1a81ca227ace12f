package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/buildhub/property-api/internal/pkg/validation"
)

// echoValidator lets Echo call c.Validate(req) with the shared validator, so
// request and service validation produce the same domain.ValidationError.
type echoValidator struct{}

// NewValidator returns a validator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	return echoValidator{}
}

func (echoValidator) Validate(i any) error {
	return validation.Struct(i)
}
