package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/middleware"
)

const authCookieMaxAge = 24 * 60 * 60

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	UserType string `json:"userType" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password, req.Name, req.UserType)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Token travels both as an HTTP-only cookie and in the body, so browser
	// and non-browser clients can each pick their transport.
	c.SetCookie(middleware.AuthCookieName, token, authCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"user":     user,
		"userType": user.UserType,
		"token":    token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// VerifyToken re-validates the session token and re-fetches the user, so a
// deleted account is caught even while its token is still unexpired.
func (h *Handler) VerifyToken(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	user, err := h.Auth.VerifySession(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) GetProfile(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	user, err := h.Auth.VerifySession(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req struct {
		Name     string `json:"name"`
		UserType string `json:"userType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.UserType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword is the dedicated re-hash path for password changes.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.ChangePassword(c.Request.Context(), userID, req.Password); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

func currentUserID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.GetString(middleware.CtxUserID), 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}
