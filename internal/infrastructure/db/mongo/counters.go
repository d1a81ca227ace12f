package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildhub/property-api/internal/core/schema"
)

// nextSequence atomically increments the named counter in db and returns the
// new value. Counters are local to a namespace.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Collection(schema.Counters).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return out.Seq, nil
}
