package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

const entityProject = "project"

type ProjectService struct {
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewProjectService(audit ports.AuditRecorder, logger zerolog.Logger) *ProjectService {
	return &ProjectService{audit: audit, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, scope ports.Scope, input ports.CreateProjectInput) (*domain.Project, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	status := domain.ProjectStatus(input.Status)
	if status == "" {
		status = domain.ProjectPlanning
	}
	now := time.Now().UTC()
	p, err := store.Projects().Create(ctx, &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
		Status:      status,
		CreatedBy:   scope.Request.PrincipalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditCreate, entityProject, p.ID, map[string]any{"name": p.Name}))
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, scope ports.Scope, id int64) (*domain.Project, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	return store.Projects().FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, scope ports.Scope, filter ports.ProjectFilter) ([]*domain.Project, int64, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return store.Projects().List(ctx, filter)
}

func (s *ProjectService) Update(ctx context.Context, scope ports.Scope, input ports.UpdateProjectInput) (*domain.Project, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	p, err := store.Projects().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
		changes["name"] = p.Name
	}
	if input.Location != nil {
		p.Location = strings.TrimSpace(*input.Location)
		changes["location"] = p.Location
	}
	if input.Description != nil {
		p.Description = *input.Description
		changes["description"] = true
	}
	if input.Status != nil {
		p.Status = domain.ProjectStatus(*input.Status)
		changes["status"] = p.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := store.Projects().Update(ctx, p); err != nil {
		return nil, err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditUpdate, entityProject, p.ID, changes))
	return p, nil
}

// Delete removes a project that no longer has units.
func (s *ProjectService) Delete(ctx context.Context, scope ports.Scope, id int64) error {
	store, err := tenantStore(scope)
	if err != nil {
		return err
	}
	if _, err := store.Projects().FindByID(ctx, id); err != nil {
		return err
	}
	n, err := store.Units().CountByProject(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrProjectHasUnits
	}
	if err := store.Projects().Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditDelete, entityProject, id, nil))
	return nil
}
