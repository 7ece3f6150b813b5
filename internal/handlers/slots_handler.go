package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmdantas/agenda-api/internal/httperr"
	ucAppointment "github.com/rmdantas/agenda-api/internal/usecase/appointment"
)

// SlotsHandler serves the public availability query. Anyone may read it;
// no authentication required.
type SlotsHandler struct {
	availability *ucAppointment.GetAvailableSlots
	loc          *time.Location
}

func NewSlotsHandler(
	availability *ucAppointment.GetAvailableSlots,
	loc *time.Location,
) *SlotsHandler {
	return &SlotsHandler{
		availability: availability,
		loc:          loc,
	}
}

func (h *SlotsHandler) List(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		httperr.BadRequest(c, "missing_username", "A registered provider username is required to list available slots.")
		return
	}

	dateStr := c.Query("date")
	var date time.Time
	if dateStr == "" {
		date = startOfDay(time.Now().In(h.loc))
	} else {
		var err error
		date, err = parseDate(dateStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
			return
		}
	}

	slots, err := h.availability.Execute(c.Request.Context(), date, username)
	if err != nil {
		if httperr.IsBusiness(err, "provider_not_found") {
			httperr.BadRequest(c, "provider_not_found", "Unknown provider username.")
			return
		}

		httperr.Internal(c, "availability_failed", "Failed to compute available slots.")
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": out,
	})
}
