package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Namespace names an isolated data container. Tenant namespaces are always
// derived from the tenant identity; the root namespace is configured.
type Namespace string

const (
	tenantNamespacePrefix      = "namespace_"
	placeholderNamespacePrefix = "pending_"
)

var tenantNamespacePattern = regexp.MustCompile(`^namespace_[1-9][0-9]*$`)

// NamespaceForTenant is the only way a tenant namespace name is produced.
func NamespaceForTenant(tenantID int64) Namespace {
	return Namespace(tenantNamespacePrefix + strconv.FormatInt(tenantID, 10))
}

// PlaceholderNamespace returns a unique handle that keeps the registry's
// uniqueness constraint satisfied until the store has assigned an identity.
func PlaceholderNamespace() Namespace {
	return Namespace(placeholderNamespacePrefix + uuid.NewString())
}

// ParseTenantNamespace validates that s is a well-formed tenant namespace.
func ParseTenantNamespace(s string) (Namespace, error) {
	if !tenantNamespacePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNamespace, s)
	}
	return Namespace(s), nil
}

func (n Namespace) String() string { return string(n) }

func (n Namespace) IsTenant() bool { return tenantNamespacePattern.MatchString(string(n)) }

func (n Namespace) IsPlaceholder() bool {
	return strings.HasPrefix(string(n), placeholderNamespacePrefix)
}

// TenantID returns the identity encoded in a tenant namespace name.
func (n Namespace) TenantID() (int64, bool) {
	if !n.IsTenant() {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(string(n), tenantNamespacePrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
