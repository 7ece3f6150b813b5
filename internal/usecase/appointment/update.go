package appointment

import (
	"context"
	"time"

	"github.com/rmdantas/agenda-api/internal/audit"
	domain "github.com/rmdantas/agenda-api/internal/domain/appointment"
	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/models"
)

type UpdateAppointmentInput struct {
	Date        *string
	Time        *string
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	up := domain.Update{
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
	}

	// Date and time move together or not at all.
	if in.Date != nil || in.Time != nil {
		if in.Date == nil || in.Time == nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		start, err := time.ParseInLocation(
			"2006-01-02 15:04",
			*in.Date+" "+*in.Time,
			uc.loc,
		)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		if !start.Equal(ap.StartTime) {
			if err := ensureWithinWorkingHours(ctx, uc.repo, providerID, start); err != nil {
				return nil, err
			}

			if err := uc.repo.AssertSlotFree(ctx, providerID, start); err != nil {
				return nil, err
			}
		}

		up.StartTime = &start
	}

	if err := domain.ApplyUpdate(ap, up); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "appointment_updated",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
