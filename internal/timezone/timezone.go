package timezone

import "time"

// Single-timezone service: every date, grid and clock reading lives in the
// configured location.
const DefaultTimezone = "America/Sao_Paulo"

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}
