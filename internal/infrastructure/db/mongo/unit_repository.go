package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/ports"
	"github.com/buildhub/property-api/internal/core/schema"
)

type UnitRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) *UnitRepository {
	return &UnitRepository{db: db, coll: db.Collection(schema.Units)}
}

type unitDoc struct {
	ID         int64     `bson:"_id"`
	ProjectID  int64     `bson:"project_id"`
	UnitNumber string    `bson:"unit_number"`
	Floor      int       `bson:"floor"`
	Type       string    `bson:"type"`
	AreaSqft   float64   `bson:"area_sqft"`
	Price      float64   `bson:"price"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (d *unitDoc) toDomain() *domain.Unit {
	return &domain.Unit{
		ID:         d.ID,
		ProjectID:  d.ProjectID,
		UnitNumber: d.UnitNumber,
		Floor:      d.Floor,
		Type:       d.Type,
		AreaSqft:   d.AreaSqft,
		Price:      d.Price,
		Status:     domain.UnitStatus(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func (r *UnitRepository) Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id, err := nextSequence(ctx, r.db, schema.Units)
	if err != nil {
		return nil, err
	}
	doc := unitDoc{
		ID:         id,
		ProjectID:  u.ProjectID,
		UnitNumber: u.UnitNumber,
		Floor:      u.Floor,
		Type:       u.Type,
		AreaSqft:   u.AreaSqft,
		Price:      u.Price,
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUnitExists
		}
		return nil, fmt.Errorf("insert unit: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UnitRepository) FindByID(ctx context.Context, id int64) (*domain.Unit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc unitDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("find unit: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UnitRepository) List(ctx context.Context, f ports.UnitFilter) ([]*domain.Unit, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"project_id": f.ProjectID}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	docs, total, err := findPage[unitDoc](ctx, r.coll, filter, bson.D{{Key: "unit_number", Value: 1}}, f.Page, f.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list units: %w", err)
	}
	out := make([]*domain.Unit, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

func (r *UnitRepository) Update(ctx context.Context, u *domain.Unit) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
		"unit_number": u.UnitNumber,
		"floor":       u.Floor,
		"type":        u.Type,
		"area_sqft":   u.AreaSqft,
		"price":       u.Price,
		"status":      string(u.Status),
		"updated_at":  u.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUnitExists
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUnitNotFound
	}
	return nil
}

func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUnitNotFound
	}
	return nil
}

func (r *UnitRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"project_id": projectID})
}

func (r *UnitRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
