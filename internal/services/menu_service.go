package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// MenuService manages the meals offered by the restaurant.
type MenuService struct {
	crud[models.MenuItem]
}

func NewMenuService(repo store.Repo[models.MenuItem], log *logger.Logger) *MenuService {
	return &MenuService{crud: newCrud(store.CollMenu, repo, log)}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.list(ctx, bson.M{})
}

func (s *MenuService) Get(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.get(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	if err := s.create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, id int64, item models.MenuItem) (*models.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	patch := bson.M{
		"meal":        item.Meal,
		"description": item.Description,
		"price":       item.Price,
		"image":       item.Image,
	}
	return s.update(ctx, id, patch)
}

func (s *MenuService) Delete(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.remove(ctx, id)
}

func validateMenuItem(item models.MenuItem) error {
	if len(item.Meal) < 5 {
		return domain.Validation("meal must be at least 5 characters long")
	}
	if len(item.Description) < 5 {
		return domain.Validation("description must be at least 5 characters long")
	}
	if item.Price < 0 {
		return domain.Validation("price must be a non-negative integer")
	}
	if item.Image == "" {
		return domain.Validation("image must be a base64 image string")
	}
	return nil
}
