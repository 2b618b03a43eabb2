package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Nil for anonymous walk-ins.
	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min"`
	PriceCents  int       `json:"price_cents"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Source string `gorm:"size:20;default:'online'" json:"source"`

	StartedAt         *time.Time `json:"started_at"`
	ActualDurationMin *int       `json:"actual_duration_min"`
	PaymentMethod     *string    `gorm:"size:20" json:"payment_method"`

	// Advance-payment sub-state with its pricing snapshot, frozen at
	// booking time so later promotion edits don't rewrite history.
	AdvancePaymentStatus *string `gorm:"size:20" json:"advance_payment_status"`
	AdvanceBaseCents     *int    `json:"advance_base_cents"`
	AdvanceDiscountPct   *int    `json:"advance_discount_pct"`
	AdvanceFinalCents    *int    `json:"advance_final_cents"`
	AdvanceProofChannel  *string `gorm:"size:20" json:"advance_proof_channel"`
	AdvanceProofURL      *string `gorm:"size:255" json:"advance_proof_url"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End returns the predicted end of the appointment.
func (a *Appointment) End() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMin) * time.Minute)
}
