package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maikadev/maika-api/internal/domain"
)

// Repo is the document-store contract the services depend on. Every entity
// collection shares the same shape; tests substitute an in-memory fake.
type Repo[T any] interface {
	// List returns the documents matching filter, ordered by _id.
	List(ctx context.Context, filter bson.M) ([]T, error)
	// Get fetches a document by id. Misses return domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*T, error)
	// FindOne fetches the first document matching filter. Misses return domain.ErrNotFound.
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	// Insert assigns the next collection id to doc and persists it.
	Insert(ctx context.Context, doc *T) (int64, error)
	// Update applies a $set patch and reports the matched and modified counts.
	Update(ctx context.Context, id int64, patch bson.M) (matched, modified int64, err error)
	// Delete removes a document and returns its prior state, or domain.ErrNotFound.
	Delete(ctx context.Context, id int64) (*T, error)
}

// docPtr constrains P to *T carrying the SetID method used at insert time.
type docPtr[T any] interface {
	*T
	SetID(int64)
}

// Collection is the MongoDB-backed Repo implementation.
type Collection[T any, P docPtr[T]] struct {
	name string
	coll *mongo.Collection
	seq  Sequencer
}

// NewCollection builds a Repo over the named collection of the store.
func NewCollection[T any, P docPtr[T]](s *Store, name string) *Collection[T, P] {
	return &Collection[T, P]{
		name: name,
		coll: s.db.Collection(name),
		seq:  s.Sequencer(),
	}
}

func (c *Collection[T, P]) List(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.Storage(c.name+".find", err)
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.Storage(c.name+".decode", err)
	}
	return docs, nil
}

func (c *Collection[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

func (c *Collection[T, P]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.Storage(c.name+".find_one", err)
	}
	return &doc, nil
}

func (c *Collection[T, P]) Insert(ctx context.Context, doc *T) (int64, error) {
	id, err := c.seq.NextID(ctx, c.name)
	if err != nil {
		return 0, err
	}
	P(doc).SetID(id)
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return 0, domain.Storage(c.name+".insert_one", err)
	}
	return id, nil
}

func (c *Collection[T, P]) Update(ctx context.Context, id int64, patch bson.M) (int64, int64, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return 0, 0, domain.Storage(c.name+".update_one", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id int64) (*T, error) {
	var doc T
	err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.Storage(c.name+".delete_one", err)
	}
	return &doc, nil
}
