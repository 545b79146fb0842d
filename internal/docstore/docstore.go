// Package docstore is the document-store abstraction consumed by the
// Experts (spot/hotel/food candidate lookup, §6) and backed by MongoDB.
// The interfaces exist so experts can be unit-tested against an in-memory
// fake without a live Mongo instance.
package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store opens named collections (§6 DocumentStore).
type Store interface {
	Collection(name string) Collection
}

// Collection is the narrow slice of Mongo operations the experts need:
// regex/range/boolean filters, sort, limit, skip (§4.4 candidate lookup).
type Collection interface {
	Find(ctx context.Context, filter bson.M, opts ...FindOption) (Cursor, error)
	FindOne(ctx context.Context, filter bson.M) (bson.M, error)
}

// Cursor iterates a Find result set.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// FindOption configures a single Find call.
type FindOption func(*findConfig)

type findConfig struct {
	sort  bson.D
	limit int64
	skip  int64
}

// WithSort orders results, e.g. bson.D{{Key: "rating", Value: -1}}.
func WithSort(sort bson.D) FindOption {
	return func(c *findConfig) { c.sort = sort }
}

// WithLimit caps the number of documents returned.
func WithLimit(n int64) FindOption {
	return func(c *findConfig) { c.limit = n }
}

// WithSkip offsets into the result set.
func WithSkip(n int64) FindOption {
	return func(c *findConfig) { c.skip = n }
}

func applyOptions(opts []FindOption) *options.FindOptionsBuilder {
	cfg := &findConfig{}
	for _, o := range opts {
		o(cfg)
	}
	builder := options.Find()
	if len(cfg.sort) > 0 {
		builder = builder.SetSort(cfg.sort)
	}
	if cfg.limit > 0 {
		builder = builder.SetLimit(cfg.limit)
	}
	if cfg.skip > 0 {
		builder = builder.SetSkip(cfg.skip)
	}
	return builder
}

// MongoStore implements Store against a live *mongo.Client.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore opens dbName on client.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{db: client.Database(dbName)}
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Find(ctx context.Context, filter bson.M, opts ...FindOption) (Cursor, error) {
	cur, err := c.coll.Find(ctx, filter, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &mongoCursor{cur: cur}, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if mongo.IsTimeout(err) {
			return nil, err
		}
		if err.Error() == mongo.ErrNoDocuments.Error() {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

type mongoCursor struct {
	cur *mongo.Cursor
}

func (c *mongoCursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }
func (c *mongoCursor) Decode(v any) error            { return c.cur.Decode(v) }
func (c *mongoCursor) Err() error                     { return c.cur.Err() }
func (c *mongoCursor) Close(ctx context.Context) error { return c.cur.Close(ctx) }
