package service

import (
	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// tenantStore returns the store of a resolved tenant scope. A scope that was
// not produced by the resolver, or whose store does not match its context,
// is rejected before any data access.
func tenantStore(scope ports.Scope) (ports.NamespaceStore, error) {
	if scope.Store == nil || scope.Request.IsRoot() {
		return nil, domain.ErrMalformedContext
	}
	if scope.Store.Namespace() != scope.Request.Namespace || !scope.Request.Namespace.IsTenant() {
		return nil, domain.ErrMalformedContext
	}
	return scope.Store, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
