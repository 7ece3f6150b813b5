package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmdantas/agenda-api/internal/httperr"
)

func strptr(s string) *string { return &s }

func TestUpdateAppointmentFields(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), false)
	ap.ClientName = "Bob"

	got, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		ClientName: strptr("Robert"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.ClientName)
	assert.Equal(t, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), got.StartTime)
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	repo.addDefaultHours(p.ID)
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), false)

	got, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		Date: strptr("2024-06-11"),
		Time: strptr("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 11, 10, 30, 0, 0, time.UTC), got.StartTime)
}

func TestUpdateAppointmentRescheduleConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	repo.addDefaultHours(p.ID)
	repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC), false)
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), false)

	_, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		Date: strptr("2024-06-10"),
		Time: strptr("10:00"),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestUpdateAppointmentDateWithoutTime(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), false)

	_, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		Date: strptr("2024-06-11"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestUpdateAppointmentCancelledIsFrozen(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), true)

	_, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		ClientName: strptr("Robert"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateAppointmentRescheduleOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, newTestDispatcher(), time.UTC)

	p := repo.addProvider("alice")
	repo.addDefaultHours(p.ID)
	ap := repo.addAppointment(p.ID, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), false)

	_, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{
		Date: strptr("2024-06-10"),
		Time: strptr("20:00"),
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	got, err := uc.Execute(context.Background(), p.ID, ap.ID, UpdateAppointmentInput{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), got.StartTime)
}
