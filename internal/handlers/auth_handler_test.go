package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/maikadev/maika-api/internal/auth"
	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/middleware"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/internal/services"
	"github.com/maikadev/maika-api/pkg/logger"
)

// memUserRepo is the minimal in-memory user store the auth flow needs.
type memUserRepo struct {
	nextID int64
	docs   map[int64]models.User
}

func (r *memUserRepo) List(_ context.Context, _ bson.M) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.docs {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) FindOne(_ context.Context, filter bson.M) (*models.User, error) {
	username, _ := filter["username"].(string)
	for _, u := range r.docs {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Insert(_ context.Context, doc *models.User) (int64, error) {
	r.nextID++
	doc.SetID(r.nextID)
	r.docs[r.nextID] = *doc
	return r.nextID, nil
}

func (r *memUserRepo) Update(_ context.Context, id int64, patch bson.M) (int64, int64, error) {
	u, ok := r.docs[id]
	if !ok {
		return 0, 0, nil
	}
	if v, ok := patch["name"].(string); ok {
		u.Name = v
	}
	if v, ok := patch["userType"].(string); ok {
		u.UserType = v
	}
	if v, ok := patch["password"].(string); ok {
		u.Password = v
	}
	if v, ok := patch["updated_at"].(time.Time); ok {
		u.UpdatedAt = v
	}
	r.docs[id] = u
	return 1, 1, nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.docs, id)
	return &u, nil
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{docs: map[int64]models.User{}}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	h := &Handler{
		Auth: services.NewAuthService(users, tokens, logger.Nop()),
		Log:  logger.Nop(),
	}

	r := gin.New()
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	r.POST("/api/v1/auth/logout", h.Logout)

	protected := r.Group("/api/v1/auth", middleware.AuthMiddleware(tokens))
	protected.GET("/verify", h.VerifyToken)
	protected.GET("/profile", h.GetProfile)
	protected.PUT("/profile", h.UpdateProfile)
	protected.PUT("/password", h.ChangePassword)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAlice(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice",
		"password": "password123",
		"name":     "Alice Cooper",
		"userType": "admin",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRegisterEndpoint(t *testing.T) {
	r := newAuthTestRouter()

	registerAlice(t, r)

	// Duplicate usernames conflict.
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice",
		"password": "otherpassword",
		"name":     "Alice Crooper",
		"userType": "service",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}

func TestLoginEndpoint(t *testing.T) {
	r := newAuthTestRouter()
	registerAlice(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.NotContains(t, w.Body.String(), "password123")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the auth cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// The cookie alone authenticates follow-up requests.
	verify := doJSON(r, http.MethodGet, "/api/v1/auth/verify", nil, func(req *http.Request) {
		req.AddCookie(cookie)
	})
	assert.Equal(t, http.StatusOK, verify.Code)
	assert.Contains(t, verify.Body.String(), `"username":"alice"`)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	r := newAuthTestRouter()
	registerAlice(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "nobody",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyEndpoint_RequiresToken(t *testing.T) {
	r := newAuthTestRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/auth/verify", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	r := newAuthTestRouter()
	registerAlice(t, r)

	login := doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &body))

	w := doJSON(r, http.MethodPut, "/api/v1/auth/profile", gin.H{
		"name": "Alice C",
	}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+body.Token)
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"name":"Alice C"`)
}

func TestLogoutEndpoint_ClearsCookie(t *testing.T) {
	r := newAuthTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}
