package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DateKey formats an instant as its calendar date inside tz. All "same day"
// decisions go through this; comparing wall-clock dates from the caller's
// zone is off by one near midnight.
func DateKey(t time.Time, tz string) string {
	return t.In(Location(tz)).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same calendar date in tz.
func SameDay(a, b time.Time, tz string) bool {
	return DateKey(a, tz) == DateKey(b, tz)
}

// IsToday reports whether t is today in tz.
func IsToday(t time.Time, tz string) bool {
	return SameDay(t, time.Now(), tz)
}

// StartOfDay returns midnight of t's date in tz.
func StartOfDay(t time.Time, tz string) time.Time {
	loc := Location(tz)
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
