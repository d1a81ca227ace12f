package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/core/schema"
)

// AuditRepository appends to the audit_logs collection of its database.
type AuditRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db, coll: db.Collection(schema.AuditLogs)}
}

type auditDoc struct {
	ID          int64          `bson:"_id"`
	PrincipalID int64          `bson:"principal_id"`
	Action      string         `bson:"action"`
	EntityType  string         `bson:"entity_type"`
	EntityID    int64          `bson:"entity_id"`
	Details     map[string]any `bson:"details,omitempty"`
	CreatedAt   time.Time      `bson:"created_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id, err := nextSequence(ctx, r.db, schema.AuditLogs)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, auditDoc{
		ID:          id,
		PrincipalID: e.PrincipalID,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Details:     e.Details,
		CreatedAt:   e.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *AuditRepository) List(ctx context.Context, f ports.AuditFilter) ([]*domain.AuditEntry, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if f.EntityType != "" {
		filter["entity_type"] = f.EntityType
	}
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

	docs, total, err := findPage[auditDoc](ctx, r.coll, filter, sort, f.Page, f.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	out := make([]*domain.AuditEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.AuditEntry{
			ID:          d.ID,
			PrincipalID: d.PrincipalID,
			Action:      d.Action,
			EntityType:  d.EntityType,
			EntityID:    d.EntityID,
			Details:     d.Details,
			CreatedAt:   d.CreatedAt.UTC(),
		})
	}
	return out, total, nil
}
