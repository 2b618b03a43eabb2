package appointment

import (
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// HourOnDate anchors an HH:mm string onto day's calendar date in day's
// location. The zero time is returned for malformed strings.
func HourOnDate(hm string, day time.Time) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// WithinWorkingHours checks [start, end) against one weekday row, lunch
// break included. A missing or inactive row means closed.
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	workStart := HourOnDate(wh.StartTime, start)
	workEnd := HourOnDate(wh.EndTime, start)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart := HourOnDate(wh.LunchStart, start)
		lunchEnd := HourOnDate(wh.LunchEnd, start)

		if start.Before(lunchEnd) && end.After(lunchStart) {
			return false
		}
	}

	return true
}

// Overlaps reports interval intersection; touching boundaries do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
