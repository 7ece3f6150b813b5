package appointment

import (
	"time"

	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel flags an appointment as cancelled. The record stays in storage;
// its slot becomes bookable again.
func Cancel(ap *models.Appointment, now time.Time) error {
	if ap.Cancelled {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Cancelled = true
	ap.CancelledAt = &now
	return nil
}

type Update struct {
	StartTime   *time.Time
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
}

// ApplyUpdate overwrites only the fields present in the update. Cancelled
// appointments are frozen.
func ApplyUpdate(ap *models.Appointment, up Update) error {
	if ap.Cancelled {
		return httperr.ErrBusiness("invalid_state")
	}

	if up.StartTime != nil {
		ap.StartTime = *up.StartTime
	}
	if up.ClientName != nil {
		ap.ClientName = *up.ClientName
	}
	if up.ClientEmail != nil {
		ap.ClientEmail = *up.ClientEmail
	}
	if up.ClientPhone != nil {
		ap.ClientPhone = *up.ClientPhone
	}

	return nil
}
