package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/httpresp"
	"github.com/rmdantas/agenda-api/internal/middleware"
	"github.com/rmdantas/agenda-api/internal/models"
)

type ProviderHandler struct {
	db *gorm.DB
}

func NewProviderHandler(db *gorm.DB) *ProviderHandler {
	return &ProviderHandler{db: db}
}

// List is restricted to superusers.
func (h *ProviderHandler) List(c *gin.Context) {
	superuser := c.MustGet(middleware.ContextSuperuser).(bool)
	if !superuser {
		httperr.Forbidden(c, "forbidden", "Only superusers may list providers.")
		return
	}

	var providers []models.Provider
	if err := h.db.Order("username ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Failed to list providers.")
		return
	}

	httpresp.List(c, providers)
}
