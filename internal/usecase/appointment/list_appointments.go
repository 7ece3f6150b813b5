package appointment

import (
	"context"
	"time"

	domain "github.com/rmdantas/agenda-api/internal/domain/appointment"
	"github.com/rmdantas/agenda-api/internal/dto"
	"github.com/rmdantas/agenda-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lists a provider's appointments. With a date, only that calendar
// day; without one, the whole history newest first.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	providerID uint,
	date *time.Time,
) ([]dto.AppointmentListDTO, error) {

	var appointments []models.Appointment
	var err error

	if date != nil {
		start := time.Date(
			date.Year(),
			date.Month(),
			date.Day(),
			0, 0, 0, 0,
			date.Location(),
		)
		end := start.Add(24 * time.Hour)

		appointments, err = uc.repo.ListAppointmentsForPeriod(
			ctx,
			providerID,
			start,
			end,
		)
	} else {
		appointments, err = uc.repo.ListAllAppointments(ctx, providerID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			ClientName:  ap.ClientName,
			ClientEmail: ap.ClientEmail,
			ClientPhone: ap.ClientPhone,
			Cancelled:   ap.Cancelled,
			CancelledAt: ap.CancelledAt,
		})
	}

	return out, nil
}
