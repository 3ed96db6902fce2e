package handlers

import (
	"net/http"

	"fwc_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users services.UserService
}

func NewAdminHandler(users services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}
