package handlers

import (
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

// All date/time strings coming from clients are interpreted in the shop's
// timezone, never the caller's.

func locationFromShop(shop *models.Barbershop) *time.Location {
	return timezone.Location(shop.Timezone)
}

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}

func parseDateTimeInShop(
	shop *models.Barbershop,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromShop(shop),
	)
}
