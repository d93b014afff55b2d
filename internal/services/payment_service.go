package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

var rfcRe = regexp.MustCompile(`^[a-zA-Z0-9]{13}$`)

// PaymentService settles orders into payments. Payments are soft-deleted:
// they flip to inactive and disappear from listings but stay stored.
type PaymentService struct {
	crud[models.Payment]
	orders store.Repo[models.Order]
}

func NewPaymentService(payments store.Repo[models.Payment], orders store.Repo[models.Order], log *logger.Logger) *PaymentService {
	return &PaymentService{
		crud:   newCrud(store.CollPayments, payments, log),
		orders: orders,
	}
}

// List returns active payments only.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.list(ctx, bson.M{"active": true})
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	return s.get(ctx, id)
}

// OrdersToPay lists every order with its total computed from the line items.
func (s *PaymentService) OrdersToPay(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, bson.M{})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list orders to pay")
		return nil, err
	}
	for i := range orders {
		orders[i].Total = orders[i].ComputeTotal()
	}
	return orders, nil
}

// Create persists the payment and removes its source order. The two steps are
// not one transaction; if deleting the order fails the payment is removed
// again as compensation.
func (s *PaymentService) Create(ctx context.Context, p models.Payment) (*models.Payment, error) {
	if err := validatePayment(p); err != nil {
		return nil, err
	}
	p.Active = true
	if err := s.create(ctx, &p); err != nil {
		return nil, err
	}

	if _, err := s.orders.Delete(ctx, p.OrderID); err != nil {
		if _, cerr := s.repo.Delete(ctx, p.ID); cerr != nil {
			s.log.Error().Err(cerr).Int64("payment_id", p.ID).
				Msg("failed to roll back payment after order delete failure")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, p.OrderID)
		}
		s.log.Error().Err(err).Int64("order_id", p.OrderID).Msg("failed to delete source order")
		return nil, err
	}

	s.log.Info().Int64("payment_id", p.ID).Int64("order_id", p.OrderID).Msg("payment created, source order removed")
	return &p, nil
}

// Delete soft-deletes a payment. Inactive payments behave as if they were
// gone: a second delete returns not-found.
func (s *PaymentService) Delete(ctx context.Context, id int64) (*models.Payment, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrNotFound
	}
	matched, modified, err := s.repo.Update(ctx, id, bson.M{"active": false})
	if err != nil {
		s.log.Error().Err(err).Int64("payment_id", id).Msg("failed to soft-delete payment")
		return nil, err
	}
	if matched == 0 || modified == 0 {
		return nil, domain.ErrNotFound
	}
	p.Active = false
	s.log.Info().Int64("payment_id", id).Msg("payment soft-deleted")
	return p, nil
}

func validatePayment(p models.Payment) error {
	if p.Name == "" {
		return domain.Validation("name must not be empty")
	}
	if p.Table < 1 {
		return domain.Validation("the table must be an integer greater than 0")
	}
	if p.OrderID < 1 {
		return domain.Validation("the order ID must be an integer greater than 0")
	}
	if p.Total <= 0 {
		return domain.Validation("the total must be greater than 0")
	}
	if !rfcRe.MatchString(p.RFC) {
		return domain.Validation("the RFC must have exactly 13 alphanumeric characters")
	}
	if p.PaymentType == "" {
		return domain.Validation("the payment type cannot be empty")
	}
	if len(p.Dishes) == 0 {
		return domain.Validation("the dishes field must contain at least one dish")
	}
	return nil
}
