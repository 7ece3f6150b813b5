package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/rmdantas/agenda-api/internal/domain/appointment"
	"github.com/rmdantas/agenda-api/internal/holiday"
	"github.com/rmdantas/agenda-api/internal/httperr"
)

type GetAvailableSlots struct {
	repo     domain.Repository
	holidays holiday.Oracle
	interval time.Duration
}

func NewGetAvailableSlots(
	repo domain.Repository,
	holidays holiday.Oracle,
	interval time.Duration,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:     repo,
		holidays: holidays,
		interval: interval,
	}
}

// Execute returns the bookable slot instants for a provider on one calendar
// day, ascending. Holidays have no slots at all. Past dates are not
// rejected here; that rule lives on the booking path.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	date time.Time,
	providerUsername string,
) ([]time.Time, error) {

	provider, err := uc.repo.GetProviderByUsername(ctx, providerUsername)
	if err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	if check := uc.holidays.IsHoliday(ctx, date); check.Holiday {
		return []time.Time{}, nil
	}

	weekday := int(date.Weekday())
	wh, err := uc.repo.GetWorkingHours(ctx, provider.ID, weekday)
	if err != nil {
		// No configured hours is an empty day; anything else is an
		// infrastructure failure, not an empty calendar.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []time.Time{}, nil
		}
		return nil, err
	}

	grid := domain.SlotGrid(date, wh, uc.interval)
	if len(grid) == 0 {
		return []time.Time{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	active, err := uc.repo.FindActiveAppointments(ctx, provider.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]struct{}, len(active))
	for _, ap := range active {
		taken[ap.StartTime.Unix()] = struct{}{}
	}

	slots := make([]time.Time, 0, len(grid))
	for _, s := range grid {
		if _, busy := taken[s.Unix()]; busy {
			continue
		}
		slots = append(slots, s)
	}

	return slots, nil
}
