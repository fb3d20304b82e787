package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoDisconnectTimeout = 5 * time.Second

// Mongo is a Store keeping one document per input in a collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

var _ Store = (*Mongo)(nil)

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// OpenMongo connects to uri and uses the named database and collection.
func OpenMongo(ctx context.Context, uri, database, collection string, logger *zap.Logger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if uri == "" {
		return nil, fmt.Errorf("mongo storage requires a uri")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Debug("opened mongo storage",
		zap.String("op", "store.mongo.open"),
		zap.String("database", database),
		zap.String("collection", collection),
	)
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}, nil
}

func prefixFilter(prefix string) bson.M {
	if prefix == "" {
		return bson.M{}
	}
	return bson.M{"_id": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}
}

// Load implements Store.
func (m *Mongo) Load(ctx context.Context, prefix string) (map[string]string, error) {
	cursor, err := m.collection.Find(ctx, prefixFilter(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query stored inputs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode stored inputs: %w", err)
	}

	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		out[doc.Key] = doc.Value
	}
	return out, nil
}

// Save implements Store.
func (m *Mongo) Save(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(entries))
	for key, value := range entries {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": key}).
			SetUpdate(bson.M{"$set": bson.M{"value": value, "updatedAt": now}}).
			SetUpsert(true))
	}

	if _, err := m.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to save inputs: %w", err)
	}
	m.logger.Debug("saved inputs",
		zap.String("op", "store.mongo.save"),
		zap.Int("entries", len(entries)),
	)
	return nil
}

// Remove implements Store.
func (m *Mongo) Remove(ctx context.Context, prefix string) error {
	if _, err := m.collection.DeleteMany(ctx, prefixFilter(prefix)); err != nil {
		return fmt.Errorf("failed to remove stored inputs: %w", err)
	}
	return nil
}

// Close implements Store.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
