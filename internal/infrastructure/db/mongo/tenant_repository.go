package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/core/schema"
)

// TenantRepository implements ports.TenantRepository on the root database.
type TenantRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTenantRepository(root *mongo.Database) *TenantRepository {
	return &TenantRepository{db: root, coll: root.Collection(schema.Tenants)}
}

type tenantDoc struct {
	ID               int64     `bson:"_id"`
	Name             string    `bson:"name"`
	ContactEmail     string    `bson:"contact_email"`
	ContactPhone     string    `bson:"contact_phone,omitempty"`
	SubscriptionTier string    `bson:"subscription_tier"`
	Namespace        string    `bson:"namespace"`
	Active           bool      `bson:"active"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func (d *tenantDoc) toDomain() *domain.Tenant {
	return &domain.Tenant{
		ID:               d.ID,
		Name:             d.Name,
		ContactEmail:     d.ContactEmail,
		ContactPhone:     d.ContactPhone,
		SubscriptionTier: domain.SubscriptionTier(d.SubscriptionTier),
		Namespace:        domain.Namespace(d.Namespace),
		Active:           d.Active,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

func (r *TenantRepository) Insert(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id, err := nextSequence(ctx, r.db, schema.Tenants)
	if err != nil {
		return nil, err
	}
	doc := tenantDoc{
		ID:               id,
		Name:             t.Name,
		ContactEmail:     t.ContactEmail,
		ContactPhone:     t.ContactPhone,
		SubscriptionTier: string(t.SubscriptionTier),
		Namespace:        t.Namespace.String(),
		Active:           t.Active,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrNamespaceCollision
		}
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return doc.toDomain(), nil
}

// SetNamespace only matches records that were never activated, so the
// namespace of an active tenant cannot be rewritten.
func (r *TenantRepository) SetNamespace(ctx context.Context, id int64, ns domain.Namespace) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "active": false},
		bson.M{"$set": bson.M{"namespace": ns.String(), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNamespaceCollision
		}
		return fmt.Errorf("set tenant namespace: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// SetActive flips the active flag. Activation additionally requires the
// record to carry its derived namespace, so a record still holding a
// placeholder can never become active.
func (r *TenantRepository) SetActive(ctx context.Context, id int64, active bool) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": id}
	if active {
		filter["namespace"] = domain.NamespaceForTenant(id).String()
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"active": active, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("set tenant active: %w", err)
	}
	if res.MatchedCount == 0 {
		if active {
			return domain.ErrTenantIncomplete
		}
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) UpdateMetadata(ctx context.Context, t *domain.Tenant) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": t.ID}, bson.M{"$set": bson.M{
		"name":              t.Name,
		"contact_email":     t.ContactEmail,
		"contact_phone":     t.ContactPhone,
		"subscription_tier": string(t.SubscriptionTier),
		"updated_at":        t.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) DeleteInactive(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "active": false})
	if err != nil {
		return fmt.Errorf("delete inactive tenant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc tenantDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TenantRepository) ListActive(ctx context.Context) ([]*domain.Tenant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	var docs []tenantDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tenants: %w", err)
	}

	out := make([]*domain.Tenant, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *TenantRepository) List(ctx context.Context, f ports.TenantFilter) ([]*domain.Tenant, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if f.Active != nil {
		filter["active"] = *f.Active
	}
	if f.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}

	docs, total, err := findPage[tenantDoc](ctx, r.coll, filter, bson.D{{Key: "_id", Value: 1}}, f.Page, f.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	out := make([]*domain.Tenant, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

// findPage runs a counted, sorted and paginated query.
func findPage[D any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, page, limit int) ([]D, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetSkip(skipFor(page, limit)).SetLimit(int64(limit))
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}
