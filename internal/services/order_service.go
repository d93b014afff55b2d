package services

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

var orderNameRe = regexp.MustCompile(`^[a-zA-Z ]+$`)

// OrderService manages dining orders.
type OrderService struct {
	crud[models.Order]
}

func NewOrderService(repo store.Repo[models.Order], log *logger.Logger) *OrderService {
	return &OrderService{crud: newCrud(store.CollOrders, repo, log)}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.get(ctx, id)
}

// Create stores a new order. The status is always "pending" regardless of
// what the caller sent.
func (s *OrderService) Create(ctx context.Context, o models.Order) (*models.Order, error) {
	if err := validateOrder(o); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatusPending
	if err := s.create(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, o models.Order) (*models.Order, error) {
	if err := validateOrder(o); err != nil {
		return nil, err
	}
	patch := bson.M{
		"name":   o.Name,
		"table":  o.Table,
		"dishes": o.Dishes,
	}
	if o.Status != "" {
		patch["status"] = o.Status
	}
	return s.update(ctx, id, patch)
}

func (s *OrderService) Delete(ctx context.Context, id int64) (*models.Order, error) {
	return s.remove(ctx, id)
}

func validateOrder(o models.Order) error {
	if len(strings.Fields(o.Name)) < 2 {
		return domain.Validation("the name must include both first and last name")
	}
	if !orderNameRe.MatchString(o.Name) {
		return domain.Validation("the name must only contain alphabetic characters and spaces")
	}
	if o.Table <= 0 {
		return domain.Validation("the table number must be greater than 0")
	}
	if o.Table >= 100 {
		return domain.Validation("the table number must be less than 100")
	}
	if len(o.Dishes) == 0 {
		return domain.Validation("the order must include at least one dish")
	}
	for _, d := range o.Dishes {
		if d.Name == "" {
			return domain.Validation("each dish must have a valid name")
		}
		if d.Price <= 0 {
			return domain.Validation("the price of each dish must be greater than 0")
		}
		if d.Quantity <= 0 {
			return domain.Validation("the quantity of each dish must be greater than 0")
		}
	}
	return nil
}
