package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maikadev/maika-api/internal/auth"
	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/pkg/logger"
)

func newAuthFixture() (*AuthService, *fakeRepo[models.User, *models.User]) {
	users := newFakeRepo[models.User, *models.User]()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens, logger.Nop()), users
}

func TestAuthService_Register(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice Cooper", user.Name)
	assert.Empty(t, user.Password, "returned user must be sanitized")
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := users.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPasswordHash("password123", stored.Password))
}

func TestAuthService_Register_NormalizesUsername(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Alice  ", "password123", "Alice Cooper", models.UserTypeService)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	stored, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)

	// Case only differs; normalization makes it the same username.
	_, err = svc.Register(ctx, "ALICE", "otherpassword", "Alice Crooper", models.UserTypeService)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := users.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", stored.Name, "the existing user must be untouched")
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		fullName string
		userType string
	}{
		{"short username", "al", "password123", "Alice Cooper", models.UserTypeAdmin},
		{"username with space", "a lice", "password123", "Alice Cooper", models.UserTypeAdmin},
		{"short password", "alice", "12345", "Alice Cooper", models.UserTypeAdmin},
		{"short name", "alice", "password123", "A", models.UserTypeAdmin},
		{"unknown user type", "alice", "password123", "Alice Cooper", "manager"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, tc.fullName, tc.userType)
			assert.True(t, domain.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ALICE", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)

	// Unknown usernames and wrong passwords are indistinguishable to callers.
	_, _, err = svc.Login(ctx, "alice", "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_VerifySession(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	user, err := svc.VerifySession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.Password)

	// A deleted user is rejected even while the token is still unexpired.
	_, err = users.Delete(ctx, registered.ID)
	require.NoError(t, err)
	_, err = svc.VerifySession(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_VerifySession_BadToken(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.VerifySession(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeService)
	require.NoError(t, err)

	user, err := svc.UpdateProfile(ctx, registered.ID, "Alice C", models.UserTypeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Alice C", user.Name)
	assert.Equal(t, models.UserTypeAdmin, user.UserType)
	assert.Empty(t, user.Password)

	// The stored password hash must survive a profile update.
	stored, err := users.Get(ctx, registered.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("password123", stored.Password))
}

func TestAuthService_UpdateProfile_Errors(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeService)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, registered.ID, "", "")
	assert.True(t, domain.IsValidation(err), "empty patch must be rejected, got %v", err)

	_, err = svc.UpdateProfile(ctx, registered.ID, "", "manager")
	assert.True(t, domain.IsValidation(err), "unknown user type must be rejected, got %v", err)

	_, err = svc.UpdateProfile(ctx, 999, "Someone Else", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "password123", "Alice Cooper", models.UserTypeAdmin)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, registered.ID, "short")
	assert.True(t, domain.IsValidation(err))

	err = svc.ChangePassword(ctx, 999, "newpassword")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.ChangePassword(ctx, registered.ID, "newpassword"))

	_, _, err = svc.Login(ctx, "alice", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
}
