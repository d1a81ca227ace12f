package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

type CreateProjectInput struct {
	Name        string `validate:"required,min=2,max=160"`
	Location    string `validate:"required,max=200"`
	Description string `validate:"omitempty,max=2000"`
	Status      string `validate:"omitempty,oneof=planning under_construction completed"`
}

type UpdateProjectInput struct {
	ID          int64
	Name        *string `validate:"omitempty,min=2,max=160"`
	Location    *string `validate:"omitempty,max=200"`
	Description *string `validate:"omitempty,max=2000"`
	Status      *string `validate:"omitempty,oneof=planning under_construction completed"`
}

// ProjectService operates on the projects of the scope's namespace only.
type ProjectService interface {
	Create(ctx context.Context, scope Scope, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, scope Scope, id int64) (*domain.Project, error)
	List(ctx context.Context, scope Scope, filter ProjectFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, scope Scope, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, scope Scope, id int64) error
}

type CreateUnitInput struct {
	ProjectID  int64
	UnitNumber string  `validate:"required,max=32"`
	Floor      int     `validate:"gte=0,lte=300"`
	Type       string  `validate:"required,max=64"`
	AreaSqft   float64 `validate:"gt=0"`
	Price      float64 `validate:"gt=0"`
}

type UpdateUnitInput struct {
	ID         int64
	UnitNumber *string  `validate:"omitempty,max=32"`
	Floor      *int     `validate:"omitempty,gte=0,lte=300"`
	Type       *string  `validate:"omitempty,max=64"`
	AreaSqft   *float64 `validate:"omitempty,gt=0"`
	Price      *float64 `validate:"omitempty,gt=0"`
}

type UnitService interface {
	Create(ctx context.Context, scope Scope, input CreateUnitInput) (*domain.Unit, error)
	Get(ctx context.Context, scope Scope, id int64) (*domain.Unit, error)
	List(ctx context.Context, scope Scope, filter UnitFilter) ([]*domain.Unit, int64, error)
	Update(ctx context.Context, scope Scope, input UpdateUnitInput) (*domain.Unit, error)
	ChangeStatus(ctx context.Context, scope Scope, id int64, status domain.UnitStatus) (*domain.Unit, error)
	Delete(ctx context.Context, scope Scope, id int64) error
}
