package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/audit"
	"github.com/rmdantas/agenda-api/internal/holiday"
	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/models"
)

// fakeRepo is an in-memory Repository for usecase tests.
type fakeRepo struct {
	providers    map[string]*models.Provider
	workingHours map[uint]map[int]*models.WorkingHours
	appointments []*models.Appointment
	nextID       uint

	// forces GetWorkingHours to fail, simulating a lost database
	workingHoursErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers:    map[string]*models.Provider{},
		workingHours: map[uint]map[int]*models.WorkingHours{},
		nextID:       1,
	}
}

func (f *fakeRepo) addProvider(username string) *models.Provider {
	p := &models.Provider{ID: f.nextID, Username: username}
	f.nextID++
	f.providers[username] = p
	return p
}

func (f *fakeRepo) addDefaultHours(providerID uint) {
	hours := map[int]*models.WorkingHours{}
	for weekday := 0; weekday < 7; weekday++ {
		hours[weekday] = &models.WorkingHours{
			ProviderID: providerID,
			Weekday:    weekday,
			Active:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
		}
	}
	f.workingHours[providerID] = hours
}

func (f *fakeRepo) addAppointment(providerID uint, start time.Time, cancelled bool) *models.Appointment {
	ap := &models.Appointment{
		ID:         f.nextID,
		ProviderID: providerID,
		StartTime:  start,
		Cancelled:  cancelled,
	}
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return ap
}

func (f *fakeRepo) GetProviderByUsername(_ context.Context, username string) (*models.Provider, error) {
	p, ok := f.providers[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := f.AssertSlotFree(ctx, ap.ProviderID, ap.StartTime); err != nil {
		return err
	}
	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) AssertSlotFree(_ context.Context, providerID uint, start time.Time) error {
	for _, ap := range f.appointments {
		if ap.ProviderID == providerID && !ap.Cancelled && ap.StartTime.Equal(start) {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForProvider(_ context.Context, appointmentID, providerID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ProviderID == providerID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range f.appointments {
		if existing.ID == ap.ID {
			f.appointments[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, providerID uint, weekday int) (*models.WorkingHours, error) {
	if f.workingHoursErr != nil {
		return nil, f.workingHoursErr
	}
	hours, ok := f.workingHours[providerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	wh, ok := hours[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return wh, nil
}

func (f *fakeRepo) FindActiveAppointments(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID != providerID || ap.Cancelled {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID != providerID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) ListAllAppointments(_ context.Context, providerID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID == providerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// fakeOracle records calls and answers from a fixed set of holiday dates.
type fakeOracle struct {
	holidays map[string]bool
	calls    int
}

func (f *fakeOracle) IsHoliday(_ context.Context, date time.Time) holiday.Check {
	f.calls++
	if f.holidays[date.Format("2006-01-02")] {
		return holiday.Check{Holiday: true, Status: holiday.StatusConfirmed}
	}
	return holiday.Check{Holiday: false, Status: holiday.StatusConfirmed}
}

// discardSink drops audit events.
type discardSink struct{}

func (discardSink) Log(uint, string, string, *uint, any) error { return nil }

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{}, zap.NewNop())
}
