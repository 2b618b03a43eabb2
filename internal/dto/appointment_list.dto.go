package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	PriceCents  int       `json:"price_cents"`

	StartedAt         *time.Time `json:"started_at,omitempty"`
	ActualDurationMin *int       `json:"actual_duration_min,omitempty"`

	AdvancePaymentStatus *string `json:"advance_payment_status,omitempty"`

	// Estimated minutes late, derived from the running day; zero when on
	// time. Never persisted.
	DelayMin int `json:"delay_min"`
}

type ScheduleCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"no_show"`
}

type DayScheduleDTO struct {
	Date         string               `json:"date"`
	Appointments []AppointmentListDTO `json:"appointments"`
	Counts       ScheduleCounts       `json:"counts"`
}
