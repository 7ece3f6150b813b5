package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/audit"
	domain "github.com/rmdantas/agenda-api/internal/domain/appointment"
	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderUsername string

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	provider, err := uc.repo.GetProviderByUsername(ctx, in.ProviderUsername)
	if err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness("booking_in_past")
	}

	if err := ensureWithinWorkingHours(ctx, uc.repo, provider.ID, start); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ProviderID:  provider.ID,
		StartTime:   start,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
		Cancelled:   false,
	}

	if err := uc.repo.AssertSlotFree(ctx, provider.ID, start); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// ensureWithinWorkingHours is the shared gate for booking and rescheduling.
// Missing hours mean the provider does not work that weekday; any other
// lookup failure is an infrastructure error and surfaces as one.
func ensureWithinWorkingHours(
	ctx context.Context,
	repo domain.Repository,
	providerID uint,
	start time.Time,
) error {
	wh, err := repo.GetWorkingHours(ctx, providerID, int(start.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("outside_working_hours")
		}
		return err
	}

	if !withinWorkingHours(start, wh) {
		return httperr.ErrBusiness("outside_working_hours")
	}
	return nil
}

func withinWorkingHours(start time.Time, wh *models.WorkingHours) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			start.Location(),
		), true
	}

	open, ok := parseHM(wh.StartTime)
	if !ok {
		return false
	}
	close, ok := parseHM(wh.EndTime)
	if !ok {
		return false
	}

	return !start.Before(open) && start.Before(close)
}
