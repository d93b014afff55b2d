package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/models"
)

func (h *Handler) GetInventories(c *gin.Context) {
	inventories, err := h.Inventory.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventories)
}

func (h *Handler) CreateInventory(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Inventory.Create(c.Request.Context(), item)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateInventory(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.Inventory.Update(c.Request.Context(), id, item)
	if errors.Is(err, domain.ErrNotModified) {
		c.JSON(http.StatusOK, gin.H{"message": "The inventory is already up-to-date"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateInventoryExistence changes only the stock level of an item.
func (h *Handler) UpdateInventoryExistence(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req struct {
		Existence *int64 `json:"existence" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "existence is required"})
		return
	}

	updated, err := h.Inventory.UpdateExistence(c.Request.Context(), id, *req.Existence)
	if errors.Is(err, domain.ErrNotModified) {
		c.JSON(http.StatusOK, gin.H{"message": "The inventory existence is already up-to-date"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteInventory(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	removed, err := h.Inventory.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
