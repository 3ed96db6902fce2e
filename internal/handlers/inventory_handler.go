package handlers

import (
	"net/http"
	"strconv"

	"fwc_backend/internal/models"
	"fwc_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	catalog services.CatalogService
}

func NewInventoryHandler(catalog services.CatalogService) *InventoryHandler {
	return &InventoryHandler{catalog: catalog}
}

// ListProducts filters by category and, unless all=true, hides
// switched-off entries.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	onlyAvailable := c.Query("all") != "true"
	entries, err := h.catalog.List(c.Request.Context(), c.Query("category"), onlyAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": entries})
}

func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var entry models.CatalogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.catalog.AddEntry(c.Request.Context(), &entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": entry})
}

// SetProductStatus switches a catalog entry on or off.
func (h *InventoryHandler) SetProductStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Status != "on" && req.Status != "off" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be on or off"})
		return
	}

	if err := h.catalog.SetAvailability(c.Request.Context(), uint(id), req.Status == "on"); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product status updated successfully"})
}
