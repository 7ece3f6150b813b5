package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/httpresp"
	"github.com/rmdantas/agenda-api/internal/middleware"
	"github.com/rmdantas/agenda-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
