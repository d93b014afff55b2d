package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maikadev/maika-api/internal/domain"
	"github.com/maikadev/maika-api/internal/services"
	"github.com/maikadev/maika-api/internal/store"
	"github.com/maikadev/maika-api/pkg/logger"
)

// Handler bundles every service the routes need. main builds one and
// registers its methods on the router.
type Handler struct {
	Auth         *services.AuthService
	Users        *services.UserService
	Menu         *services.MenuService
	Reservations *services.ReservationService
	Staff        *services.StaffService
	Inventory    *services.InventoryService
	Orders       *services.OrderService
	Payments     *services.PaymentService
	Gateway      services.PaymentGateway
	Store        *store.Store
	Log          *logger.Logger
}

// respondError translates a service error into the HTTP response. Storage
// failures are logged in full but surface as a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := domain.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "operation failed"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.Validation("id must be an integer")
	}
	return id, nil
}
