package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesTargetZone(t *testing.T) {
	// 01:30 UTC is still the previous evening in São Paulo
	instant := time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-11", DateKey(instant, "UTC"))
	assert.Equal(t, "2026-03-10", DateKey(instant, "America/Sao_Paulo"))
}

func TestSameDayAcrossMidnight(t *testing.T) {
	a := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	assert.False(t, SameDay(a, b, "UTC"))
	// both land on March 10 in São Paulo (UTC-3)
	assert.True(t, SameDay(a, b, "America/Sao_Paulo"))
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC)

	start := StartOfDay(instant, "America/Sao_Paulo")
	assert.Equal(t, "2026-03-10", start.Format("2006-01-02"))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, "America/Sao_Paulo", start.Location().String())
}

func TestLocationFallsBackOnInvalid(t *testing.T) {
	assert.False(t, IsValid("Mars/Olympus_Mons"))
	assert.False(t, IsValid(""))
	assert.True(t, IsValid("America/Sao_Paulo"))

	loc := Location("Mars/Olympus_Mons")
	assert.Equal(t, DefaultTimezone, loc.String())
}
