package service

import (
	"context"
	"time"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

// AuditService persists audit entries into the namespace each entry names and
// lists the entries of a resolved scope.
type AuditService struct {
	stores ports.StoreFactory
}

func NewAuditService(stores ports.StoreFactory) *AuditService {
	return &AuditService{stores: stores}
}

func (s *AuditService) Write(ctx context.Context, entry domain.AuditEntry) error {
	store, err := s.stores.Tenant(entry.Namespace)
	if err != nil {
		return err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return store.AuditLog().Insert(ctx, &entry)
}

func (s *AuditService) List(ctx context.Context, scope ports.Scope, filter ports.AuditFilter) ([]*domain.AuditEntry, int64, error) {
	store, err := tenantStore(scope)
	if err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return store.AuditLog().List(ctx, filter)
}
