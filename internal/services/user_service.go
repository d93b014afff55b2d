package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// UserService is the administrative view over the users collection. Creation
// goes through AuthService.Register; everything returned here is sanitized.
type UserService struct {
	crud[models.User]
}

func NewUserService(repo store.Repo[models.User], log *logger.Logger) *UserService {
	return &UserService{crud: newCrud(store.CollUsers, repo, log)}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.list(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}
