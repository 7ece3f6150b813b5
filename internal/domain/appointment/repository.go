package appointment

import (
	"context"
	"time"

	"github.com/rmdantas/agenda-api/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByUsername(
		ctx context.Context,
		username string,
	) (*models.Provider, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// AssertSlotFree fails with a business error when the provider already
	// has an active appointment at exactly start.
	AssertSlotFree(
		ctx context.Context,
		providerID uint,
		start time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		providerID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// FindActiveAppointments lists non-cancelled appointments with
	// start_time in [start, end), ascending.
	FindActiveAppointments(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListAllAppointments returns the provider's whole history,
	// newest first, cancelled included.
	ListAllAppointments(
		ctx context.Context,
		providerID uint,
	) ([]models.Appointment, error)
}
