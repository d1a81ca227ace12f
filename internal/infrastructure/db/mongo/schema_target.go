package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/schema"
)

// SchemaTarget applies structural steps to one database at a time. It is used
// for both the root database and tenant databases.
type SchemaTarget struct {
	client *mongo.Client
}

func NewSchemaTarget(client *mongo.Client) *SchemaTarget {
	return &SchemaTarget{client: client}
}

type migrationDoc struct {
	Version    int       `bson:"_id"`
	Name       string    `bson:"name"`
	Collection string    `bson:"collection"`
	AppliedAt  time.Time `bson:"applied_at"`
}

func (s *SchemaTarget) db(ns domain.Namespace) *mongo.Database {
	return s.client.Database(ns.String())
}

func (s *SchemaTarget) AppliedVersions(ctx context.Context, ns domain.Namespace) (map[int]bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.db(ns).Collection(schema.Migrations).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var docs []migrationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode migrations: %w", err)
	}

	out := make(map[int]bool, len(docs))
	for _, d := range docs {
		out[d.Version] = true
	}
	return out, nil
}

func (s *SchemaTarget) HasCollection(ctx context.Context, ns domain.Namespace, name string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	names, err := s.db(ns).ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// CreateCollection tolerates a concurrent creator winning the race.
func (s *SchemaTarget) CreateCollection(ctx context.Context, ns domain.Namespace, name string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.db(ns).CreateCollection(ctx, name); err != nil && !isNamespaceExists(err) {
		return err
	}
	return nil
}

// EnsureIndexes creates the named indexes. MongoDB treats re-creating an
// identical index as a no-op.
func (s *SchemaTarget) EnsureIndexes(ctx context.Context, ns domain.Namespace, collection string, indexes []schema.Index) error {
	if len(indexes) == 0 {
		return nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, indexModel(idx))
	}
	_, err := s.db(ns).Collection(collection).Indexes().CreateMany(ctx, models)
	return err
}

func (s *SchemaTarget) RecordVersion(ctx context.Context, ns domain.Namespace, step schema.Step) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.db(ns).Collection(schema.Migrations).UpdateOne(ctx,
		bson.M{"_id": step.Version},
		bson.M{"$setOnInsert": bson.M{
			"name":       step.Name,
			"collection": step.Collection,
			"applied_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func indexModel(idx schema.Index) mongo.IndexModel {
	keys := make(bson.D, 0, len(idx.Keys))
	for _, k := range idx.Keys {
		if strings.HasPrefix(k, "-") {
			keys = append(keys, bson.E{Key: strings.TrimPrefix(k, "-"), Value: -1})
			continue
		}
		keys = append(keys, bson.E{Key: k, Value: 1})
	}

	opts := options.Index().SetName(idx.Name)
	if idx.Unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: opts}
}
