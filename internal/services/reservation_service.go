package services

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// reservationDateLayout matches the "DD MMM YYYY HH:MM" format the frontend sends.
const reservationDateLayout = "02 Jan 2006 15:04"

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// ReservationService manages table reservations.
type ReservationService struct {
	crud[models.Reservation]
}

func NewReservationService(repo store.Repo[models.Reservation], log *logger.Logger) *ReservationService {
	return &ReservationService{crud: newCrud(store.CollReservations, repo, log)}
}

func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.list(ctx, bson.M{})
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.get(ctx, id)
}

func (s *ReservationService) Create(ctx context.Context, r models.Reservation) (*models.Reservation, error) {
	if err := validateReservation(r); err != nil {
		return nil, err
	}
	if err := s.create(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) Update(ctx context.Context, id int64, r models.Reservation) (*models.Reservation, error) {
	if err := validateReservation(r); err != nil {
		return nil, err
	}
	patch := bson.M{
		"date":          r.Date,
		"people":        r.People,
		"t_reservation": r.TReservation,
		"name":          r.Name,
		"last_name":     r.LastName,
		"phone":         r.Phone,
		"email":         r.Email,
		"special":       r.Special,
	}
	return s.update(ctx, id, patch)
}

func (s *ReservationService) Delete(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.remove(ctx, id)
}

func validateReservation(r models.Reservation) error {
	if _, err := time.Parse(reservationDateLayout, r.Date); err != nil {
		return domain.Validation("date must be in the format 'DD MMM YYYY HH:MM'")
	}
	if r.People < 1 {
		return domain.Validation("there must be at least one person for the reservation")
	}
	if r.TReservation == "" {
		return domain.Validation("reservation type must not be empty")
	}
	if r.Name == "" {
		return domain.Validation("name must not be empty")
	}
	if r.LastName == "" {
		return domain.Validation("last name must not be empty")
	}
	if !phoneRe.MatchString(r.Phone) {
		return domain.Validation("phone must be exactly 10 digits long")
	}
	if !emailRe.MatchString(r.Email) {
		return domain.Validation("invalid email address")
	}
	if len(r.Special) > 255 {
		return domain.Validation("special instructions must not exceed 255 characters")
	}
	return nil
}
