package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

const maxStaffSalary = 1_000_000

// StaffService manages restaurant employees.
type StaffService struct {
	crud[models.StaffMember]
}

func NewStaffService(repo store.Repo[models.StaffMember], log *logger.Logger) *StaffService {
	return &StaffService{crud: newCrud(store.CollStaff, repo, log)}
}

func (s *StaffService) List(ctx context.Context) ([]models.StaffMember, error) {
	return s.list(ctx, bson.M{})
}

func (s *StaffService) Get(ctx context.Context, id int64) (*models.StaffMember, error) {
	return s.get(ctx, id)
}

func (s *StaffService) Create(ctx context.Context, m models.StaffMember) (*models.StaffMember, error) {
	if err := validateStaffMember(m); err != nil {
		return nil, err
	}
	if err := s.create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *StaffService) Update(ctx context.Context, id int64, m models.StaffMember) (*models.StaffMember, error) {
	if err := validateStaffMember(m); err != nil {
		return nil, err
	}
	patch := bson.M{
		"name":     m.Name,
		"title":    m.Title,
		"email":    m.Email,
		"salary":   m.Salary,
		"birthday": m.Birthday,
		"status":   m.Status,
		"avatar":   m.Avatar,
	}
	return s.update(ctx, id, patch)
}

func (s *StaffService) Delete(ctx context.Context, id int64) (*models.StaffMember, error) {
	return s.remove(ctx, id)
}

func validateStaffMember(m models.StaffMember) error {
	if strings.TrimSpace(m.Name) == "" {
		return domain.Validation("name must be a non-empty string")
	}
	if len(m.Name) > 50 {
		return domain.Validation("name must not exceed 50 characters")
	}
	if strings.TrimSpace(m.Title) == "" {
		return domain.Validation("title must be a non-empty string")
	}
	if len(m.Title) > 100 {
		return domain.Validation("title must not exceed 100 characters")
	}
	if !emailRe.MatchString(m.Email) || len(m.Email) > 100 {
		return domain.Validation("invalid email address")
	}
	if m.Salary < 0 {
		return domain.Validation("salary must be a non-negative number")
	}
	if m.Salary > maxStaffSalary {
		return domain.Validation("salary seems unrealistic (over 1 million)")
	}
	if m.Birthday == "" {
		return domain.Validation("birthday must be provided")
	}
	if !strings.HasPrefix(m.Avatar, "data:image/") {
		return domain.Validation("avatar must be a valid base64 image string")
	}
	return nil
}
