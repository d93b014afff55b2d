package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// InventoryService manages kitchen inventory items.
type InventoryService struct {
	crud[models.InventoryItem]
}

func NewInventoryService(repo store.Repo[models.InventoryItem], log *logger.Logger) *InventoryService {
	return &InventoryService{crud: newCrud(store.CollInventories, repo, log)}
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	return s.list(ctx, bson.M{})
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return s.get(ctx, id)
}

func (s *InventoryService) Create(ctx context.Context, item models.InventoryItem) (*models.InventoryItem, error) {
	if err := validateInventoryItem(item); err != nil {
		return nil, err
	}
	if err := s.create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Update(ctx context.Context, id int64, item models.InventoryItem) (*models.InventoryItem, error) {
	if err := validateInventoryItem(item); err != nil {
		return nil, err
	}
	patch := bson.M{
		"name":      item.Name,
		"unit":      item.Unit,
		"existence": item.Existence,
		"image":     item.Image,
	}
	return s.update(ctx, id, patch)
}

// UpdateExistence changes only the stock level of an inventory item.
func (s *InventoryService) UpdateExistence(ctx context.Context, id int64, existence int64) (*models.InventoryItem, error) {
	if existence < 0 {
		return nil, domain.Validation("existence must be a non-negative integer")
	}
	return s.update(ctx, id, bson.M{"existence": existence})
}

func (s *InventoryService) Delete(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return s.remove(ctx, id)
}

func validateInventoryItem(item models.InventoryItem) error {
	if item.Name == "" {
		return domain.Validation("name must be a non-empty string")
	}
	if item.Unit == "" {
		return domain.Validation("unit must be a non-empty string")
	}
	if item.Existence < 0 {
		return domain.Validation("existence must be a non-negative integer")
	}
	if item.Image == "" {
		return domain.Validation("image must be a base64 image string")
	}
	return nil
}
