package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

// TenantMetadataInput carries the builder's descriptive data.
type TenantMetadataInput struct {
	Name             string `validate:"required,min=2,max=120"`
	ContactEmail     string `validate:"required,email"`
	ContactPhone     string `validate:"omitempty,max=32"`
	SubscriptionTier string `validate:"required,oneof=basic professional enterprise"`
}

// AdminCredentialsInput describes the initial tenant_admin principal.
type AdminCredentialsInput struct {
	Name     string `validate:"required,min=2,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
	Phone    string `validate:"omitempty,max=32"`
}

type OnboardTenantInput struct {
	Tenant TenantMetadataInput
	Admin  AdminCredentialsInput
	// IdempotencyKey is optional. A repeated key returns the tenant created
	// by the first successful attempt.
	IdempotencyKey string
}

type OnboardResult struct {
	Tenant   *domain.Tenant
	Admin    *domain.Principal
	Replayed bool
}

type OnboardingService interface {
	Onboard(ctx context.Context, input OnboardTenantInput) (*OnboardResult, error)
}

// OnboardingGuard serialises onboarding attempts that share an idempotency key.
type OnboardingGuard interface {
	// Begin claims key. It returns the tenant identity recorded by an earlier
	// completed attempt, or domain.ErrOnboardingInFlight while another
	// attempt holds the claim.
	Begin(ctx context.Context, key string) (replayTenantID int64, err error)
	Complete(ctx context.Context, key string, tenantID int64) error
	Abort(ctx context.Context, key string) error
}
