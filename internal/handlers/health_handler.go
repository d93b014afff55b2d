package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthcheck reports whether the API can reach its database.
func (h *Handler) Healthcheck(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
