package domain

import (
	"strings"
	"time"
)

// Role is namespace dependent: root principals are always super admins,
// tenant principals hold one of the tenant-scoped roles.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleTenantAdmin  Role = "tenant_admin"
	RoleSalesManager Role = "sales_manager"
	RoleSalesAgent   Role = "sales_agent"
)

func (r Role) IsTenantRole() bool {
	switch r {
	case RoleTenantAdmin, RoleSalesManager, RoleSalesAgent:
		return true
	}
	return false
}

// CanManage reports whether a principal holding r may create or edit a
// principal holding other.
func (r Role) CanManage(other Role) bool {
	switch r {
	case RoleTenantAdmin:
		return other.IsTenantRole()
	case RoleSalesManager:
		return other == RoleSalesAgent
	}
	return false
}

// Principal is an authenticatable user scoped to exactly one namespace.
// Email is the login identifier and is unique only within that namespace.
type Principal struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail is applied to login identifiers before storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
