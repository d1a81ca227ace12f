package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

// PrincipalFilter narrows principal listings within one namespace.
type PrincipalFilter struct {
	Role   domain.Role // optional
	Active *bool       // optional
	Page   int         // 1-based
	Limit  int
}

// PrincipalRepository persists principals of a single namespace. Email
// uniqueness is enforced per namespace, never globally.
type PrincipalRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByID(ctx context.Context, id int64) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	List(ctx context.Context, filter PrincipalFilter) ([]*domain.Principal, int64, error)
	Update(ctx context.Context, p *domain.Principal) error
	Count(ctx context.Context) (int64, error)
}
