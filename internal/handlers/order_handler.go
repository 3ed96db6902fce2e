package handlers

import (
	"context"
	"net/http"
	"time"

	"fwc_backend/internal/models"
	"fwc_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders  services.OrderService
	builder services.OrderBuilder
	timeout time.Duration
}

func NewOrderHandler(orders services.OrderService, builder services.OrderBuilder, timeout time.Duration) *OrderHandler {
	return &OrderHandler{orders: orders, builder: builder, timeout: timeout}
}

func (h *OrderHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

type orderRequest struct {
	QuotationID string `json:"quotation_id"`
	OrderID     string `json:"order_id"`

	CustomerID   *uint  `json:"customer_id"`
	CustomerType string `json:"customer_type"`
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
	District     string `json:"district"`
	State        string `json:"state"`

	Items []services.LineItemRequest `json:"items"`

	NetRate            float64 `json:"net_rate"`
	YouSave            float64 `json:"you_save"`
	PromoDiscount      float64 `json:"promo_discount"`
	AdditionalDiscount float64 `json:"additional_discount"`
	Total              float64 `json:"total"`

	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	AmountPaid    float64 `json:"amount_paid"`
}

func (r orderRequest) buildRequest(refID string) services.BuildRequest {
	return services.BuildRequest{
		RefID:              refID,
		CustomerID:         r.CustomerID,
		CustomerType:       r.CustomerType,
		CustomerName:       r.CustomerName,
		Address:            r.Address,
		MobileNumber:       r.MobileNumber,
		Email:              r.Email,
		District:           r.District,
		State:              r.State,
		Items:              r.Items,
		NetRate:            r.NetRate,
		YouSave:            r.YouSave,
		PromoDiscount:      r.PromoDiscount,
		AdditionalDiscount: r.AdditionalDiscount,
		Total:              r.Total,
	}
}

type orderPatchRequest struct {
	Status             *string                    `json:"status"`
	Items              []services.LineItemRequest `json:"items"`
	NetRate            *float64                   `json:"net_rate"`
	YouSave            *float64                   `json:"you_save"`
	PromoDiscount      *float64                   `json:"promo_discount"`
	AdditionalDiscount *float64                   `json:"additional_discount"`
	Total              *float64                   `json:"total"`
}

func (r orderPatchRequest) patch() services.OrderPatch {
	p := services.OrderPatch{
		Items:              r.Items,
		NetRate:            r.NetRate,
		YouSave:            r.YouSave,
		PromoDiscount:      r.PromoDiscount,
		AdditionalDiscount: r.AdditionalDiscount,
		Total:              r.Total,
	}
	if r.Status != nil {
		status := models.OrderStatus(*r.Status)
		p.Status = &status
	}
	return p
}

type bookingPatchRequest struct {
	orderPatchRequest
	PaymentMethod *string                    `json:"payment_method"`
	TransactionID *string                    `json:"transaction_id"`
	AmountPaid    *float64                   `json:"amount_paid"`
	Transport     *services.TransportRequest `json:"transport_details"`
}

func (r bookingPatchRequest) bookingPatch() services.BookingPatch {
	return services.BookingPatch{
		OrderPatch:    r.patch(),
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		AmountPaid:    r.AmountPaid,
		Transport:     r.Transport,
	}
}

func (h *OrderHandler) CreateQuotation(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	draft, err := h.builder.Build(ctx, models.KindQuotation, req.buildRequest(req.QuotationID))
	if err != nil {
		respondError(c, err)
		return
	}
	quotation, err := h.orders.CreateQuotation(ctx, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quotation created successfully", "quotation": quotation})
}

func (h *OrderHandler) CreateBooking(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	draft, err := h.builder.Build(ctx, models.KindBooking, req.buildRequest(req.OrderID))
	if err != nil {
		respondError(c, err)
		return
	}

	var fromQuotation *string
	if req.QuotationID != "" {
		fromQuotation = &req.QuotationID
	}
	payment := services.PaymentDetails{
		Method:        req.PaymentMethod,
		TransactionID: req.TransactionID,
		AmountPaid:    req.AmountPaid,
	}

	booking, err := h.orders.CreateBooking(ctx, draft, fromQuotation, payment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order booked successfully", "order": booking})
}

func (h *OrderHandler) GetQuotation(c *gin.Context) {
	quotation, items, err := h.orders.GetQuotation(c.Request.Context(), c.Param("quotation_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotation": quotation, "items": items})
}

func (h *OrderHandler) GetBooking(c *gin.Context) {
	booking, items, err := h.orders.GetBooking(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": booking, "items": items})
}

func (h *OrderHandler) UpdateQuotation(c *gin.Context) {
	var req orderPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quotation, err := h.orders.UpdateQuotation(ctx, c.Param("quotation_id"), req.patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation updated successfully", "quotation": quotation})
}

func (h *OrderHandler) UpdateBooking(c *gin.Context) {
	var req bookingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	booking, err := h.orders.UpdateBooking(ctx, c.Param("order_id"), req.bookingPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": booking})
}

func (h *OrderHandler) CancelQuotation(c *gin.Context) {
	if err := h.orders.CancelQuotation(c.Request.Context(), c.Param("quotation_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation canceled successfully"})
}

func (h *OrderHandler) CancelBooking(c *gin.Context) {
	if err := h.orders.CancelBooking(c.Request.Context(), c.Param("order_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order canceled successfully"})
}

func (h *OrderHandler) DeleteBooking(c *gin.Context) {
	if err := h.orders.DeleteBooking(c.Request.Context(), c.Param("order_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// GetQuotationDocument streams the stored PDF, regenerating it first if
// the file has gone missing.
func (h *OrderHandler) GetQuotationDocument(c *gin.Context) {
	h.serveDocument(c, models.KindQuotation, c.Param("quotation_id"))
}

func (h *OrderHandler) GetBookingDocument(c *gin.Context) {
	h.serveDocument(c, models.KindBooking, c.Param("order_id"))
}

func (h *OrderHandler) serveDocument(c *gin.Context, kind models.OrderKind, refID string) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	data, filename, err := h.orders.FetchArtifact(ctx, kind, refID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *OrderHandler) ListQuotations(c *gin.Context) {
	quotations, err := h.orders.ListQuotations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotations": quotations})
}

func (h *OrderHandler) ListBookings(c *gin.Context) {
	bookings, err := h.orders.ListBookings(c.Request.Context(), c.Query("status"), c.Query("customer_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": bookings})
}

type searchRequest struct {
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
}

func (h *OrderHandler) SearchQuotations(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	quotations, err := h.orders.SearchQuotations(c.Request.Context(), req.CustomerName, req.MobileNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotations": quotations})
}

func (h *OrderHandler) SearchBookings(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	bookings, err := h.orders.SearchBookings(c.Request.Context(), req.CustomerName, req.MobileNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": bookings})
}
