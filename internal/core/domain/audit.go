package domain

import "time"

const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry records a mutation inside a tenant namespace. Namespace is used
// for routing the write and is not persisted.
type AuditEntry struct {
	ID          int64          `json:"id"`
	Namespace   Namespace      `json:"-"`
	PrincipalID int64          `json:"principal_id"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entity_type"`
	EntityID    int64          `json:"entity_id"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
