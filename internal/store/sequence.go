package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maikadev/maika-api/internal/domain"
)

const countersCollection = "counters"

// Sequencer hands out per-collection integer ids, starting at 1.
type Sequencer interface {
	NextID(ctx context.Context, collection string) (int64, error)
}

// counterSequencer implements Sequencer with an atomic $inc on a counter
// document per collection, so concurrent creates cannot hand out the same id.
type counterSequencer struct {
	store *Store
}

// Sequencer returns the store-backed sequencer.
func (s *Store) Sequencer() Sequencer {
	return &counterSequencer{store: s}
}

func (c *counterSequencer) NextID(ctx context.Context, collection string) (int64, error) {
	counters := c.store.db.Collection(countersCollection)
	res := counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, domain.Storage("counters.next_id "+collection, err)
	}
	return counter.Seq, nil
}

// SeedCounters aligns each counter with the largest _id already stored in its
// collection, so ids stay monotonic over data created before the counters
// existed. $max keeps a counter that is already ahead untouched.
func (s *Store) SeedCounters(ctx context.Context, collections ...string) error {
	counters := s.db.Collection(countersCollection)
	for _, name := range collections {
		var last struct {
			ID int64 `bson:"_id"`
		}
		res := s.db.Collection(name).FindOne(ctx, bson.M{},
			options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}}))
		if err := res.Decode(&last); err != nil {
			continue // empty collection, counter starts from zero
		}
		_, err := counters.UpdateOne(ctx,
			bson.M{"_id": name},
			bson.M{"$max": bson.M{"seq": last.ID}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return domain.Storage("counters.seed "+name, err)
		}
	}
	return nil
}
