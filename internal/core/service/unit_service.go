package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/pkg/validation"
)

const entityUnit = "unit"

// UnitService manages units. A unit's project must exist in the same
// namespace; references never cross namespaces.
type UnitService struct {
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUnitService(audit ports.AuditRecorder, logger zerolog.Logger) *UnitService {
	return &UnitService{audit: audit, logger: logger}
}

func (s *UnitService) Create(ctx context.Context, scope ports.Scope, input ports.CreateUnitInput) (*domain.Unit, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := store.Projects().FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u, err := store.Units().Create(ctx, &domain.Unit{
		ProjectID:  input.ProjectID,
		UnitNumber: strings.TrimSpace(input.UnitNumber),
		Floor:      input.Floor,
		Type:       strings.TrimSpace(input.Type),
		AreaSqft:   input.AreaSqft,
		Price:      input.Price,
		Status:     domain.UnitAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditCreate, entityUnit, u.ID, map[string]any{
		"project_id":  u.ProjectID,
		"unit_number": u.UnitNumber,
	}))
	return u, nil
}

func (s *UnitService) Get(ctx context.Context, scope ports.Scope, id int64) (*domain.Unit, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	return store.Units().FindByID(ctx, id)
}

func (s *UnitService) List(ctx context.Context, scope ports.Scope, filter ports.UnitFilter) ([]*domain.Unit, int64, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, 0, err
	}
	if _, err := store.Projects().FindByID(ctx, filter.ProjectID); err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return store.Units().List(ctx, filter)
}

func (s *UnitService) Update(ctx context.Context, scope ports.Scope, input ports.UpdateUnitInput) (*domain.Unit, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	u, err := store.Units().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if input.UnitNumber != nil {
		u.UnitNumber = strings.TrimSpace(*input.UnitNumber)
		changes["unit_number"] = u.UnitNumber
	}
	if input.Floor != nil {
		u.Floor = *input.Floor
		changes["floor"] = u.Floor
	}
	if input.Type != nil {
		u.Type = strings.TrimSpace(*input.Type)
		changes["type"] = u.Type
	}
	if input.AreaSqft != nil {
		u.AreaSqft = *input.AreaSqft
		changes["area_sqft"] = u.AreaSqft
	}
	if input.Price != nil {
		u.Price = *input.Price
		changes["price"] = u.Price
	}
	u.UpdatedAt = time.Now().UTC()

	if err := store.Units().Update(ctx, u); err != nil {
		return nil, err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditUpdate, entityUnit, u.ID, changes))
	return u, nil
}

// ChangeStatus moves a unit through available, reserved and sold.
func (s *UnitService) ChangeStatus(ctx context.Context, scope ports.Scope, id int64, status domain.UnitStatus) (*domain.Unit, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, err
	}
	u, err := store.Units().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, u.Status, status)
	}

	from := u.Status
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	if err := store.Units().Update(ctx, u); err != nil {
		return nil, err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditUpdate, entityUnit, u.ID, map[string]any{
		"status_from": from,
		"status_to":   status,
	}))
	return u, nil
}

func (s *UnitService) Delete(ctx context.Context, scope ports.Scope, id int64) error {
	store, err := tenantStore(scope)
	if err != nil {
		return err
	}
	if err := store.Units().Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(scope.Request.NewAuditEntry(domain.AuditDelete, entityUnit, id, nil))
	return nil
}
