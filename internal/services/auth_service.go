package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/auth"
	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

var validUserTypes = map[string]bool{
	models.UserTypeAdmin:   true,
	models.UserTypeService: true,
	models.UserTypeKitchen: true,
}

// AuthService implements register, login, session verification and profile
// updates. Usernames are normalized to lowercase at write time, so lookups
// are effectively case-insensitive.
type AuthService struct {
	users  store.Repo[models.User]
	tokens *auth.TokenService
	log    *logger.Logger
}

func NewAuthService(users store.Repo[models.User], tokens *auth.TokenService, log *logger.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a user with a hashed password. The input is re-validated
// here even though the binding layer already checks it.
func (s *AuthService) Register(ctx context.Context, username, password, name, userType string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateRegistration(username, password, name, userType); err != nil {
		return nil, err
	}

	_, err := s.users.FindOne(ctx, bson.M{"username": username})
	if err == nil {
		return nil, domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Error().Err(err).Str("username", username).Msg("failed to check username availability")
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Username:  username,
		Password:  hash,
		Name:      name,
		UserType:  userType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.users.Insert(ctx, &user); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, err
	}

	s.log.Info().Str("username", username).Int64("id", user.ID).Msg("user registered")
	return user.Sanitize(), nil
}

// Login verifies the credentials and issues a token. Unknown usernames and
// wrong passwords both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.FindOne(ctx, bson.M{"username": username})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("username", username).Msg("failed to look up user")
		return nil, "", err
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		s.log.Warn().Str("username", username).Msg("failed login attempt")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Username, user.UserType)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("username", username).Msg("user logged in")
	return user.Sanitize(), token, nil
}

// VerifySession validates the token and re-fetches the user, so a deleted
// user is rejected even while its token is still unexpired.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// UpdateProfile applies a partial update to a user. Any attempt to change the
// password through this path is stripped; password changes go through
// ChangePassword so they are always re-hashed.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name, userType string) (*models.User, error) {
	patch := bson.M{}
	if name != "" {
		patch["name"] = name
	}
	if userType != "" {
		if !validUserTypes[userType] {
			return nil, domain.Validation("user type must be one of: admin, service, kitchen")
		}
		patch["userType"] = userType
	}
	if len(patch) == 0 {
		return nil, domain.Validation("no update fields provided")
	}
	patch["updated_at"] = time.Now().UTC()

	matched, _, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to update profile")
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// ChangePassword re-hashes and stores a new password for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.Validation("password must be at least 6 characters long")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	matched, _, err := s.users.Update(ctx, userID, bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to change password")
		return err
	}
	if matched == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validateRegistration(username, password, name, userType string) error {
	if len(username) < 3 {
		return domain.Validation("username must be at least 3 characters long")
	}
	if strings.ContainsAny(username, " \t") {
		return domain.Validation("username must not contain whitespace")
	}
	if len(password) < 6 {
		return domain.Validation("password must be at least 6 characters long")
	}
	if len(name) < 2 {
		return domain.Validation("name must be at least 2 characters long")
	}
	if !validUserTypes[userType] {
		return domain.Validation("user type must be one of: admin, service, kitchen")
	}
	return nil
}
