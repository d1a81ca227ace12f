package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrProvisioning       = errors.New("namespace provisioning failed")
	ErrNamespaceCollision = errors.New("namespace already registered")
	ErrInvalidNamespace   = errors.New("invalid namespace name")
	ErrTenantIncomplete   = errors.New("tenant onboarding incomplete")
	ErrOnboardingInFlight = errors.New("onboarding already in progress")

	// Resolution failures. They are rendered identically to callers so that a
	// response never reveals which check rejected the request.
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantSuspended   = errors.New("tenant suspended")
	ErrMalformedContext  = errors.New("malformed tenant context")
	ErrPrincipalInactive = errors.New("principal inactive")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrPrincipalNotFound = errors.New("principal not found")
	ErrPrincipalExists   = errors.New("principal already exists")
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectExists     = errors.New("project already exists")
	ErrProjectHasUnits   = errors.New("project still has units")
	ErrUnitNotFound      = errors.New("unit not found")
	ErrUnitExists        = errors.New("unit already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries one human-readable message per rejected field.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ProvisioningError reports the namespace and structural step that failed.
type ProvisioningError struct {
	Namespace Namespace
	Step      string
	Err       error
}

func (e *ProvisioningError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("provision %s: %v", e.Namespace, e.Err)
	}
	return fmt.Sprintf("provision %s: step %s: %v", e.Namespace, e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

func (e *ProvisioningError) Is(target error) bool { return target == ErrProvisioning }

// IsResolutionFailure reports whether err is one of the request-scoping
// rejections that must be surfaced as a generic authorization failure.
func IsResolutionFailure(err error) bool {
	return errors.Is(err, ErrTenantNotFound) ||
		errors.Is(err, ErrTenantSuspended) ||
		errors.Is(err, ErrMalformedContext) ||
		errors.Is(err, ErrPrincipalInactive)
}
