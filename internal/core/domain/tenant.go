package domain

import "time"

// SubscriptionTier is the closed set of plans a builder can be on.
type SubscriptionTier string

const (
	TierBasic        SubscriptionTier = "basic"
	TierProfessional SubscriptionTier = "professional"
	TierEnterprise   SubscriptionTier = "enterprise"
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierBasic, TierProfessional, TierEnterprise:
		return true
	}
	return false
}

// Tenant is the root-namespace record describing one builder and pointing to
// its namespace. Records are deactivated, never deleted.
type Tenant struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	ContactEmail     string           `json:"contact_email"`
	ContactPhone     string           `json:"contact_phone,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	Namespace        Namespace        `json:"namespace"`
	Active           bool             `json:"active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Ready reports whether the tenant finished onboarding and may be activated.
func (t *Tenant) Ready() bool {
	return t.Namespace == NamespaceForTenant(t.ID)
}
