package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maikadev/maika-api/internal/models"
)

// GetOrdersToPay lists pending orders with their computed totals.
func (h *Handler) GetOrdersToPay(c *gin.Context) {
	orders, err := h.Payments.OrdersToPay(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetPayments(c *gin.Context) {
	payments, err := h.Payments.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payment, err := h.Payments.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// CreatePayment settles an order: the payment is stored and the source order
// removed from the orders collection.
func (h *Handler) CreatePayment(c *gin.Context) {
	var p models.Payment
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Payments.Create(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeletePayment soft-deletes a payment; it disappears from listings but the
// document stays stored with active=false.
func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	removed, err := h.Payments.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
