package appointment

import (
	"time"

	"github.com/rmdantas/agenda-api/internal/models"
)

// SlotGrid generates the candidate slot instants for one calendar day:
// every interval from opening (inclusive) to closing (exclusive), in the
// location of date, ascending. Missing or inactive working hours yield
// an empty grid.
func SlotGrid(date time.Time, wh *models.WorkingHours, interval time.Duration) []time.Time {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil
	}
	if interval <= 0 {
		return nil
	}

	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	open, ok := parseHM(wh.StartTime)
	if !ok {
		return nil
	}
	close, ok := parseHM(wh.EndTime)
	if !ok {
		return nil
	}

	var grid []time.Time
	for cur := open; cur.Before(close); cur = cur.Add(interval) {
		grid = append(grid, cur)
	}

	return grid
}
