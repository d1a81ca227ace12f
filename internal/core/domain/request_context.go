package domain

import "time"

// RequestContext is the resolved, request-local namespace and identity.
// It is produced only after the owning tenant has been validated as active.
type RequestContext struct {
	Namespace   Namespace `json:"namespace"`
	TenantID    int64     `json:"tenant_id,omitempty"`
	PrincipalID int64     `json:"principal_id"`
	Role        Role      `json:"role"`
}

// IsRoot reports whether the request operates against the root namespace.
func (rc RequestContext) IsRoot() bool { return rc.TenantID == 0 }

// NewAuditEntry stamps an audit entry with the request's namespace and actor.
func (rc RequestContext) NewAuditEntry(action, entityType string, entityID int64, details map[string]any) AuditEntry {
	return AuditEntry{
		Namespace:   rc.Namespace,
		PrincipalID: rc.PrincipalID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
}
