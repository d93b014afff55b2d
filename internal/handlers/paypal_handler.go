package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePayPalOrder mirrors a local order into the payment gateway.
func (h *Handler) CreatePayPalOrder(c *gin.Context) {
	var req struct {
		OrderID int64 `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), req.OrderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	remote, err := h.Gateway.CreateOrder(c.Request.Context(), order)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, remote)
}

// CapturePayPalOrder captures the funds of a gateway order.
func (h *Handler) CapturePayPalOrder(c *gin.Context) {
	remote, err := h.Gateway.CaptureOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remote)
}

// GetPayPalOrder fetches the state of a gateway order.
func (h *Handler) GetPayPalOrder(c *gin.Context) {
	remote, err := h.Gateway.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remote)
}
