package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maikadev/maika-api/internal/auth"
	"github.com/maikadev/maika-api/internal/domain"
)

// AuthCookieName is the HTTP-only cookie the login handler sets.
const AuthCookieName = "auth_token"

// Context keys set for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxUserType = "userType"
	CtxToken    = "token"
)

// AuthMiddleware accepts a bearer token in the Authorization header or the
// auth_token cookie, verifies it and stores the claims in the context.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(domain.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserType, claims.UserType)
		c.Set(CtxToken, token)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}
