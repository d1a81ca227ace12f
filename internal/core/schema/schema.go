// Package schema holds the fixed, ordered structural definitions applied to
// the root namespace and to every tenant namespace. Tenant namespaces share
// one definition list so their structure is identical across tenants.
package schema

// Collection names shared by the storage adapter and the provisioner.
const (
	Tenants    = "tenants"
	Principals = "principals"
	Projects   = "projects"
	Units      = "units"
	AuditLogs  = "audit_logs"
	Counters   = "counters"
	Migrations = "schema_migrations"
)

// Index describes one index. A key prefixed with "-" sorts descending.
type Index struct {
	Name   string
	Keys   []string
	Unique bool
}

// Reference documents a same-namespace foreign key that the service layer
// enforces on write.
type Reference struct {
	Field      string
	Collection string
}

// Step is one structural migration. Version is unique within its list and
// steps are applied in list order.
type Step struct {
	Version    int
	Name       string
	Collection string
	Indexes    []Index
	References []Reference
}

// Root lists the structure of the shared root namespace.
var Root = []Step{
	{
		Version:    1,
		Name:       "create_tenants",
		Collection: Tenants,
		Indexes: []Index{
			{Name: "tenants_namespace_uq", Keys: []string{"namespace"}, Unique: true},
			{Name: "tenants_active_idx", Keys: []string{"active", "_id"}},
		},
	},
	{
		Version:    2,
		Name:       "create_root_principals",
		Collection: Principals,
		Indexes: []Index{
			{Name: "principals_email_uq", Keys: []string{"email"}, Unique: true},
		},
	},
}

// Tenant lists the structure materialised inside every tenant namespace.
var Tenant = []Step{
	{
		Version:    1,
		Name:       "create_principals",
		Collection: Principals,
		Indexes: []Index{
			{Name: "principals_email_uq", Keys: []string{"email"}, Unique: true},
			{Name: "principals_role_idx", Keys: []string{"role"}},
		},
	},
	{
		Version:    2,
		Name:       "create_projects",
		Collection: Projects,
		Indexes: []Index{
			{Name: "projects_name_uq", Keys: []string{"name"}, Unique: true},
			{Name: "projects_status_idx", Keys: []string{"status"}},
		},
	},
	{
		Version:    3,
		Name:       "create_units",
		Collection: Units,
		Indexes: []Index{
			{Name: "units_project_number_uq", Keys: []string{"project_id", "unit_number"}, Unique: true},
			{Name: "units_status_idx", Keys: []string{"status"}},
		},
		References: []Reference{{Field: "project_id", Collection: Projects}},
	},
	{
		Version:    4,
		Name:       "create_audit_logs",
		Collection: AuditLogs,
		Indexes: []Index{
			{Name: "audit_logs_created_idx", Keys: []string{"-created_at"}},
			{Name: "audit_logs_entity_idx", Keys: []string{"entity_type", "entity_id"}},
		},
		References: []Reference{{Field: "principal_id", Collection: Principals}},
	},
}
