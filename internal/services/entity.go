package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// crud is the control flow shared by every entity service: list, create with
// a store-assigned id, fetch, patch with not-found / already-up-to-date
// detection, and delete returning the removed document. Domain services embed
// it and add their own validation and derived fields.
type crud[T any] struct {
	name string
	repo store.Repo[T]
	log  *logger.Logger
}

func newCrud[T any](name string, repo store.Repo[T], log *logger.Logger) crud[T] {
	return crud[T]{name: name, repo: repo, log: log}
}

func (c *crud[T]) list(ctx context.Context, filter bson.M) ([]T, error) {
	docs, err := c.repo.List(ctx, filter)
	if err != nil {
		c.log.Error().Err(err).Str("collection", c.name).Msg("failed to list documents")
		return nil, err
	}
	return docs, nil
}

func (c *crud[T]) get(ctx context.Context, id int64) (*T, error) {
	doc, err := c.repo.Get(ctx, id)
	if err != nil {
		if !domain.IsStorage(err) {
			return nil, err
		}
		c.log.Error().Err(err).Str("collection", c.name).Int64("id", id).Msg("failed to fetch document")
		return nil, err
	}
	return doc, nil
}

func (c *crud[T]) create(ctx context.Context, doc *T) error {
	id, err := c.repo.Insert(ctx, doc)
	if err != nil {
		c.log.Error().Err(err).Str("collection", c.name).Msg("failed to create document")
		return err
	}
	c.log.Info().Str("collection", c.name).Int64("id", id).Msg("document created")
	return nil
}

// update applies patch to the document with the given id. A miss returns
// domain.ErrNotFound; a patch identical to the stored state returns
// domain.ErrNotModified so callers can tell a no-op from a real change.
func (c *crud[T]) update(ctx context.Context, id int64, patch bson.M) (*T, error) {
	matched, modified, err := c.repo.Update(ctx, id, patch)
	if err != nil {
		c.log.Error().Err(err).Str("collection", c.name).Int64("id", id).Msg("failed to update document")
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrNotFound
	}
	if modified == 0 {
		return nil, domain.ErrNotModified
	}
	return c.repo.Get(ctx, id)
}

func (c *crud[T]) remove(ctx context.Context, id int64) (*T, error) {
	doc, err := c.repo.Delete(ctx, id)
	if err != nil {
		if !domain.IsStorage(err) {
			return nil, err
		}
		c.log.Error().Err(err).Str("collection", c.name).Int64("id", id).Msg("failed to delete document")
		return nil, err
	}
	c.log.Info().Str("collection", c.name).Int64("id", id).Msg("document deleted")
	return doc, nil
}
