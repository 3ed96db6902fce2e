package handlers

import (
	"net/http"
	"strconv"

	"fwc_backend/internal/models"
	"fwc_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	party services.PartyService
}

func NewCustomerHandler(party services.PartyService) *CustomerHandler {
	return &CustomerHandler{party: party}
}

func customerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return 0, false
	}
	return uint(id), true
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.party.CreateCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer created successfully", "customer": customer})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	customer, err := h.party.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.party.UpdateCustomer(c.Request.Context(), id, &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	if err := h.party.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.party.ListCustomers(c.Request.Context(), c.Query("customer_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) ListAgents(c *gin.Context) {
	agents, err := h.party.ListAgents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}
