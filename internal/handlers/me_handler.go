package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/middleware"
	"github.com/rmdantas/agenda-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider_not_found"})
		return
	}

	c.JSON(http.StatusOK, provider)
}
