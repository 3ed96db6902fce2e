package handlers

import (
	"net/http"
	"strconv"

	"fwc_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	orders services.OrderService
}

func NewTrackingHandler(orders services.OrderService) *TrackingHandler {
	return &TrackingHandler{orders: orders}
}

// ListOrders returns every non-canceled booking for the dispatch board.
func (h *TrackingHandler) ListOrders(c *gin.Context) {
	bookings, err := h.orders.ListTracking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": bookings})
}

// UpdateStatus moves a booking through its lifecycle by numeric row id.
func (h *TrackingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req bookingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	booking, err := h.orders.UpdateBookingByID(c.Request.Context(), uint(id), req.bookingPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": booking})
}

// TransportHistory returns every dispatch record for a booking, oldest
// first. The path takes the order id string, not the numeric row id.
func (h *TrackingHandler) TransportHistory(c *gin.Context) {
	details, err := h.orders.TransportHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transport_details": details})
}
