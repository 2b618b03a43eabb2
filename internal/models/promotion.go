package models

import "time"

// Promotion discounts a service booked online inside a weekday/time window.
// The discount is snapshotted onto the appointment at booking time.
type Promotion struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	// Nil applies to every service of the shop.
	ServiceID *uint `json:"service_id"`

	Weekday     int    `json:"weekday"`
	StartTime   string `json:"start_time"` // HH:mm
	EndTime     string `json:"end_time"`   // HH:mm
	DiscountPct int    `json:"discount_pct"`
	Active      bool   `gorm:"default:true" json:"active"`

	// Channel clients send their advance-payment proof through.
	ProofChannel string `gorm:"size:20;default:'whatsapp'" json:"proof_channel"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
