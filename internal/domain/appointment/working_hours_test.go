package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

func TestWithinWorkingHours(t *testing.T) {
	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	in := func(h, m, durMin int) bool {
		start := day(h, m)
		return WithinWorkingHours(wh, start, start.Add(time.Duration(durMin)*time.Minute))
	}

	assert.True(t, in(9, 0, 30))
	assert.True(t, in(17, 30, 30))
	assert.False(t, in(8, 30, 30), "before opening")
	assert.False(t, in(17, 45, 30), "runs past closing")
	assert.False(t, in(11, 45, 30), "overlaps lunch start")
	assert.False(t, in(12, 30, 30), "inside lunch")
	assert.True(t, in(13, 0, 30), "right after lunch")
}

func TestWithinWorkingHoursInactiveDay(t *testing.T) {
	wh := &models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "18:00"}
	start := day(10, 0)
	assert.False(t, WithinWorkingHours(wh, start, start.Add(30*time.Minute)))
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	a := day(9, 0)
	b := day(9, 30)
	c := day(10, 0)

	assert.False(t, Overlaps(a, b, b, c), "back-to-back slots do not overlap")
	assert.True(t, Overlaps(a, c, b, c))
}
