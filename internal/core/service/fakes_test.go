package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/core/schema"
)

const testRootNS = domain.Namespace("property_root")

var nopLogger = zerolog.Nop()

// memWorld is an in-memory deployment: one map entry per namespace. It
// implements the registry, the schema target and the store factory.
type memWorld struct {
	mu  sync.Mutex
	dbs map[domain.Namespace]*memDB

	registerErr        error
	dropErr            error
	createCollectionOn string
	principalCreateErr error
	findByEmailErr     map[domain.Namespace]error

	dropped      []domain.Namespace
	indexEnsures int
}

type memDB struct {
	collections map[string]bool
	versions    map[int]bool
	seq         map[string]int64
	principals  map[int64]*domain.Principal
	projects    map[int64]*domain.Project
	units       map[int64]*domain.Unit
	audit       []*domain.AuditEntry
}

func newMemWorld() *memWorld {
	return &memWorld{
		dbs:            make(map[domain.Namespace]*memDB),
		findByEmailErr: make(map[domain.Namespace]error),
	}
}

// db returns the namespace container, creating it on first write the way the
// document store does.
func (w *memWorld) db(ns domain.Namespace) *memDB {
	d, ok := w.dbs[ns]
	if !ok {
		d = &memDB{
			collections: make(map[string]bool),
			versions:    make(map[int]bool),
			seq:         make(map[string]int64),
			principals:  make(map[int64]*domain.Principal),
			projects:    make(map[int64]*domain.Project),
			units:       make(map[int64]*domain.Unit),
		}
		w.dbs[ns] = d
	}
	return d
}

func (d *memDB) next(collection string) int64 {
	d.seq[collection]++
	return d.seq[collection]
}

// --- NamespaceRegistry ---

func (w *memWorld) Register(_ context.Context, ns domain.Namespace) error {
	if !ns.IsTenant() {
		return &domain.ProvisioningError{Namespace: ns, Step: "register", Err: domain.ErrInvalidNamespace}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.registerErr != nil {
		return &domain.ProvisioningError{Namespace: ns, Step: "register", Err: w.registerErr}
	}
	w.db(ns).collections[schema.Migrations] = true
	return nil
}

func (w *memWorld) Exists(_ context.Context, ns domain.Namespace) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.dbs[ns]
	return ok, nil
}

func (w *memWorld) ListAll(_ context.Context) ([]domain.Namespace, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Namespace, 0, len(w.dbs))
	for ns := range w.dbs {
		if ns.IsTenant() {
			out = append(out, ns)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (w *memWorld) Drop(_ context.Context, ns domain.Namespace) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dropErr != nil {
		return w.dropErr
	}
	delete(w.dbs, ns)
	w.dropped = append(w.dropped, ns)
	return nil
}

// --- SchemaTarget ---

func (w *memWorld) AppliedVersions(_ context.Context, ns domain.Namespace) (map[int]bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[int]bool)
	for v := range w.db(ns).versions {
		out[v] = true
	}
	return out, nil
}

func (w *memWorld) HasCollection(_ context.Context, ns domain.Namespace, name string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.db(ns).collections[name], nil
}

func (w *memWorld) CreateCollection(_ context.Context, ns domain.Namespace, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.createCollectionOn == name {
		return errors.New("storage refused collection")
	}
	w.db(ns).collections[name] = true
	return nil
}

func (w *memWorld) EnsureIndexes(_ context.Context, _ domain.Namespace, _ string, _ []schema.Index) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.indexEnsures++
	return nil
}

func (w *memWorld) RecordVersion(_ context.Context, ns domain.Namespace, step schema.Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.db(ns).versions[step.Version] = true
	return nil
}

// --- StoreFactory ---

func (w *memWorld) Root() ports.NamespaceStore { return &memStore{w: w, ns: testRootNS} }

func (w *memWorld) Tenant(ns domain.Namespace) (ports.NamespaceStore, error) {
	if !ns.IsTenant() {
		return nil, domain.ErrInvalidNamespace
	}
	return &memStore{w: w, ns: ns}, nil
}

type memStore struct {
	w  *memWorld
	ns domain.Namespace
}

func (s *memStore) Namespace() domain.Namespace           { return s.ns }
func (s *memStore) Principals() ports.PrincipalRepository { return &memPrincipals{s} }
func (s *memStore) Projects() ports.ProjectRepository     { return &memProjects{s} }
func (s *memStore) Units() ports.UnitRepository           { return &memUnits{s} }
func (s *memStore) AuditLog() ports.AuditRepository       { return &memAudit{s} }

func (s *memStore) lock() (*memDB, func()) {
	s.w.mu.Lock()
	return s.w.db(s.ns), s.w.mu.Unlock
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := (page - 1) * limit
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type memPrincipals struct{ s *memStore }

func (r *memPrincipals) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	db, unlock := r.s.lock()
	defer unlock()
	if r.s.w.principalCreateErr != nil {
		return nil, r.s.w.principalCreateErr
	}
	for _, existing := range db.principals {
		if existing.Email == p.Email {
			return nil, domain.ErrPrincipalExists
		}
	}
	c := *p
	c.ID = db.next(schema.Principals)
	db.principals[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memPrincipals) FindByID(_ context.Context, id int64) (*domain.Principal, error) {
	db, unlock := r.s.lock()
	defer unlock()
	p, ok := db.principals[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	c := *p
	return &c, nil
}

func (r *memPrincipals) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	db, unlock := r.s.lock()
	defer unlock()
	if err := r.s.w.findByEmailErr[r.s.ns]; err != nil {
		return nil, err
	}
	for _, p := range db.principals {
		if p.Email == email {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *memPrincipals) List(_ context.Context, f ports.PrincipalFilter) ([]*domain.Principal, int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	var out []*domain.Principal
	for _, p := range db.principals {
		if f.Role != "" && p.Role != f.Role {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *memPrincipals) Update(_ context.Context, p *domain.Principal) error {
	db, unlock := r.s.lock()
	defer unlock()
	if _, ok := db.principals[p.ID]; !ok {
		return domain.ErrPrincipalNotFound
	}
	c := *p
	db.principals[p.ID] = &c
	return nil
}

func (r *memPrincipals) Count(_ context.Context) (int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	return int64(len(db.principals)), nil
}

type memProjects struct{ s *memStore }

func (r *memProjects) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	db, unlock := r.s.lock()
	defer unlock()
	for _, existing := range db.projects {
		if existing.Name == p.Name {
			return nil, domain.ErrProjectExists
		}
	}
	c := *p
	c.ID = db.next(schema.Projects)
	db.projects[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memProjects) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	db, unlock := r.s.lock()
	defer unlock()
	p, ok := db.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	c := *p
	return &c, nil
}

func (r *memProjects) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	var out []*domain.Project
	for _, p := range db.projects {
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Location), strings.ToLower(f.Search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *memProjects) Update(_ context.Context, p *domain.Project) error {
	db, unlock := r.s.lock()
	defer unlock()
	if _, ok := db.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	c := *p
	db.projects[p.ID] = &c
	return nil
}

func (r *memProjects) Delete(_ context.Context, id int64) error {
	db, unlock := r.s.lock()
	defer unlock()
	if _, ok := db.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(db.projects, id)
	return nil
}

func (r *memProjects) Count(_ context.Context) (int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	return int64(len(db.projects)), nil
}

type memUnits struct{ s *memStore }

func (r *memUnits) Create(_ context.Context, u *domain.Unit) (*domain.Unit, error) {
	db, unlock := r.s.lock()
	defer unlock()
	for _, existing := range db.units {
		if existing.ProjectID == u.ProjectID && existing.UnitNumber == u.UnitNumber {
			return nil, domain.ErrUnitExists
		}
	}
	c := *u
	c.ID = db.next(schema.Units)
	db.units[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memUnits) FindByID(_ context.Context, id int64) (*domain.Unit, error) {
	db, unlock := r.s.lock()
	defer unlock()
	u, ok := db.units[id]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUnits) List(_ context.Context, f ports.UnitFilter) ([]*domain.Unit, int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	var out []*domain.Unit
	for _, u := range db.units {
		if u.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && string(u.Status) != f.Status {
			continue
		}
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *memUnits) Update(_ context.Context, u *domain.Unit) error {
	db, unlock := r.s.lock()
	defer unlock()
	if _, ok := db.units[u.ID]; !ok {
		return domain.ErrUnitNotFound
	}
	c := *u
	db.units[u.ID] = &c
	return nil
}

func (r *memUnits) Delete(_ context.Context, id int64) error {
	db, unlock := r.s.lock()
	defer unlock()
	if _, ok := db.units[id]; !ok {
		return domain.ErrUnitNotFound
	}
	delete(db.units, id)
	return nil
}

func (r *memUnits) CountByProject(_ context.Context, projectID int64) (int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	var n int64
	for _, u := range db.units {
		if u.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *memUnits) Count(_ context.Context) (int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	return int64(len(db.units)), nil
}

type memAudit struct{ s *memStore }

func (r *memAudit) Insert(_ context.Context, e *domain.AuditEntry) error {
	db, unlock := r.s.lock()
	defer unlock()
	c := *e
	c.ID = db.next(schema.AuditLogs)
	db.audit = append(db.audit, &c)
	return nil
}

func (r *memAudit) List(_ context.Context, f ports.AuditFilter) ([]*domain.AuditEntry, int64, error) {
	db, unlock := r.s.lock()
	defer unlock()
	var out []*domain.AuditEntry
	for i := len(db.audit) - 1; i >= 0; i-- {
		if f.EntityType != "" && db.audit[i].EntityType != f.EntityType {
			continue
		}
		c := *db.audit[i]
		out = append(out, &c)
	}
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

// memTenants is the root tenant registry.
type memTenants struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]*domain.Tenant

	setActiveErr error
	// setActiveCommits applies the write before returning setActiveErr.
	setActiveCommits bool
}

func newMemTenants() *memTenants {
	return &memTenants{records: make(map[int64]*domain.Tenant)}
}

func (r *memTenants) Insert(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Namespace == t.Namespace {
			return nil, domain.ErrNamespaceCollision
		}
	}
	r.seq++
	c := *t
	c.ID = r.seq
	r.records[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memTenants) SetNamespace(_ context.Context, id int64, ns domain.Namespace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.records[id]
	if !ok || t.Active {
		return domain.ErrTenantNotFound
	}
	t.Namespace = ns
	return nil
}

func (r *memTenants) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setActiveErr != nil && !r.setActiveCommits {
		return r.setActiveErr
	}
	t, ok := r.records[id]
	if !ok {
		return domain.ErrTenantNotFound
	}
	t.Active = active
	return r.setActiveErr
}

func (r *memTenants) UpdateMetadata(_ context.Context, t *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[t.ID]
	if !ok {
		return domain.ErrTenantNotFound
	}
	existing.Name = t.Name
	existing.ContactEmail = t.ContactEmail
	existing.ContactPhone = t.ContactPhone
	existing.SubscriptionTier = t.SubscriptionTier
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *memTenants) DeleteInactive(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.records[id]
	if !ok || t.Active {
		return domain.ErrTenantNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memTenants) FindByID(_ context.Context, id int64) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.records[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTenants) ListActive(_ context.Context) ([]*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tenant
	for _, t := range r.records {
		if t.Active {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTenants) List(_ context.Context, f ports.TenantFilter) ([]*domain.Tenant, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tenant
	for _, t := range r.records {
		if f.Active != nil && t.Active != *f.Active {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *memTenants) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// stubHasher keeps hashes readable in assertions.
type stubHasher struct {
	mu       sync.Mutex
	verifies int
}

func (h *stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (h *stubHasher) Verify(plaintext, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return hash == "hashed:"+plaintext
}

type stubIssuer struct {
	last ports.TokenClaims
}

func (i *stubIssuer) Issue(claims ports.TokenClaims) (string, error) {
	i.last = claims
	return "signed-token", nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

// fixture wires the core services over one in-memory deployment.
type fixture struct {
	world      *memWorld
	tenants    *memTenants
	hasher     *stubHasher
	onboarding *OnboardingService
	resolver   *Resolver
	lookup     *Lookup
}

func newFixture() *fixture {
	world := newMemWorld()
	tenants := newMemTenants()
	hasher := &stubHasher{}
	prov := NewProvisioner(world, testRootNS, nopLogger)
	return &fixture{
		world:      world,
		tenants:    tenants,
		hasher:     hasher,
		onboarding: NewOnboardingService(tenants, world, prov, world, hasher, nil, nopLogger),
		resolver:   NewResolver(tenants, world, nopLogger),
		lookup:     NewLookup(tenants, world, world, nopLogger),
	}
}

func onboardInput(name, adminEmail string) ports.OnboardTenantInput {
	return ports.OnboardTenantInput{
		Tenant: ports.TenantMetadataInput{
			Name:             name,
			ContactEmail:     "contact@" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
			SubscriptionTier: "basic",
		},
		Admin: ports.AdminCredentialsInput{
			Name:     name + " Admin",
			Email:    adminEmail,
			Password: "correct-horse",
		},
	}
}

func tenantClaims(t *domain.Tenant, principalID int64, role domain.Role) ports.TokenClaims {
	id := t.ID
	return ports.TokenClaims{PrincipalID: principalID, Role: role, TenantID: &id, Namespace: t.Namespace.String()}
}
