package ports

import (
	"context"

	"github.com/buildhub/property-api/internal/core/domain"
)

// ProjectFilter carries the query parameters for listing projects.
type ProjectFilter struct {
	Status string // optional
	Search string // optional: partial match on name or location
	Page   int
	Limit  int
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// UnitFilter carries the query parameters for listing units of one project.
type UnitFilter struct {
	ProjectID int64
	Status    string // optional
	Page      int
	Limit     int
}

type UnitRepository interface {
	Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error)
	FindByID(ctx context.Context, id int64) (*domain.Unit, error)
	List(ctx context.Context, filter UnitFilter) ([]*domain.Unit, int64, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id int64) error
	CountByProject(ctx context.Context, projectID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// AuditFilter carries the query parameters for listing audit entries.
type AuditFilter struct {
	EntityType string // optional
	Page       int
	Limit      int
}

type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*domain.AuditEntry, int64, error)
}
