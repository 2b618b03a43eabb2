package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         time.Time
}

// SlotDiscount decorates a slot falling inside an active promotion window.
type SlotDiscount struct {
	PromotionID     uint   `json:"promotion_id"`
	DiscountPct     int    `json:"discount_pct"`
	FinalPriceCents int    `json:"final_price_cents"`
	ProofChannel    string `json:"proof_channel"`
}

type TimeSlot struct {
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Discount *SlotDiscount `json:"discount,omitempty"`
}

// Availability is the full result of a slot computation. AutoRefresh tells
// the caller to re-poll: predicted durations shift as the day's actual
// timings land, so a "today" grid under prediction goes stale.
type Availability struct {
	Slots          []TimeSlot `json:"slots"`
	AutoRefresh    bool       `json:"auto_refresh"`
	GranularityMin int        `json:"granularity_min"`
	Predicted      bool       `json:"predicted"`
}
