package services

import (
	"bytes"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maikadev/maika-api/internal/domain"
)

// idSetter mirrors the pointer constraint the mongo-backed collections use.
type idSetter[T any] interface {
	*T
	SetID(int64)
}

// fakeRepo is an in-memory store.Repo for the service tests. Documents go
// through a bson round-trip on writes so patches report the same matched and
// modified counts the real driver would.
type fakeRepo[T any, P idSetter[T]] struct {
	docs   map[int64]T
	nextID int64
}

func newFakeRepo[T any, P idSetter[T]]() *fakeRepo[T, P] {
	return &fakeRepo[T, P]{docs: map[int64]T{}}
}

func (r *fakeRepo[T, P]) List(_ context.Context, filter bson.M) ([]T, error) {
	out := []T{}
	for _, id := range r.sortedIDs() {
		doc := r.docs[id]
		if matchesFilter(toBSON(&doc), filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeRepo[T, P]) Get(_ context.Context, id int64) (*T, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (r *fakeRepo[T, P]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	for _, id := range r.sortedIDs() {
		doc := r.docs[id]
		if matchesFilter(toBSON(&doc), filter) {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo[T, P]) Insert(_ context.Context, doc *T) (int64, error) {
	r.nextID++
	P(doc).SetID(r.nextID)
	r.docs[r.nextID] = *doc
	return r.nextID, nil
}

func (r *fakeRepo[T, P]) Update(_ context.Context, id int64, patch bson.M) (int64, int64, error) {
	doc, ok := r.docs[id]
	if !ok {
		return 0, 0, nil
	}
	m := toBSON(&doc)
	var modified int64
	for k, v := range patch {
		if !bsonEqual(m[k], v) {
			modified = 1
		}
		m[k] = v
	}
	if modified == 1 {
		raw, err := bson.Marshal(m)
		if err != nil {
			return 0, 0, err
		}
		var updated T
		if err := bson.Unmarshal(raw, &updated); err != nil {
			return 0, 0, err
		}
		r.docs[id] = updated
	}
	return 1, modified, nil
}

func (r *fakeRepo[T, P]) Delete(_ context.Context, id int64) (*T, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.docs, id)
	return &doc, nil
}

func (r *fakeRepo[T, P]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func toBSON[T any](doc *T) bson.M {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func matchesFilter(doc, filter bson.M) bool {
	for k, v := range filter {
		if !bsonEqual(doc[k], v) {
			return false
		}
	}
	return true
}

// bsonEqual compares two values the way a $set no-op check would: both sides
// are normalized and re-marshaled so int vs int32 vs int64 and time.Time vs
// primitive.DateTime mismatches do not count as changes.
func bsonEqual(a, b interface{}) bool {
	ra, errA := bson.Marshal(bson.M{"v": normalizeValue(a)})
	rb, errB := bson.Marshal(bson.M{"v": normalizeValue(b)})
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}

func normalizeValue(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case primitive.DateTime:
		return n.Time().UTC()
	case time.Time:
		return n.UTC()
	default:
		return v
	}
}
