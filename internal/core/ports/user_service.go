package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

type CreateUserInput struct {
	Name     string `validate:"required,min=2,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
	Phone    string `validate:"omitempty,max=32"`
	Role     string `validate:"required,oneof=tenant_admin sales_manager sales_agent"`
}

type UpdateUserInput struct {
	ID     int64
	Name   *string `validate:"omitempty,min=2,max=120"`
	Phone  *string `validate:"omitempty,max=32"`
	Role   *string `validate:"omitempty,oneof=tenant_admin sales_manager sales_agent"`
	Active *bool
}

// UserService manages the principals of the scope's tenant namespace.
type UserService interface {
	Create(ctx context.Context, scope Scope, input CreateUserInput) (*domain.Principal, error)
	Get(ctx context.Context, scope Scope, id int64) (*domain.Principal, error)
	List(ctx context.Context, scope Scope, filter PrincipalFilter) ([]*domain.Principal, int64, error)
	Update(ctx context.Context, scope Scope, input UpdateUserInput) (*domain.Principal, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence. Every
// entry names its namespace explicitly.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditWriter persists one audit entry into the namespace it names.
type AuditWriter interface {
	Write(ctx context.Context, entry domain.AuditEntry) error
}

type AuditService interface {
	AuditWriter
	List(ctx context.Context, scope Scope, filter AuditFilter) ([]*domain.AuditEntry, int64, error)
}
