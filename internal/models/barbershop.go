package models

import (
	"strings"
	"time"
)

type Barbershop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	MinAdvanceMinutes  int `gorm:"default:120" json:"min_advance_minutes"`
	SlotGranularityMin int `gorm:"default:15" json:"slot_granularity_min"`

	// Comma-separated subset of cash|card|mobile_transfer. When more than
	// one is configured, completing an appointment requires the caller to
	// pick one; a single configured method is applied implicitly.
	PaymentMethods string `gorm:"size:100;default:'cash'" json:"payment_methods"`

	DurationPredictionEnabled bool `gorm:"default:false" json:"duration_prediction_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barbershop) PaymentMethodList() []string {
	var out []string
	for _, m := range strings.Split(b.PaymentMethods, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
