package appointment

import "github.com/BruksfildServices01/agenda-sync/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed" // in progress, StartedAt set
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Valid reports whether s is one of the closed set. Data coming back from
// the store goes through this before any transition logic.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsFinalized reports a terminal status: no transition leaves it.
func (s Status) IsFinalized() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	case StatusPending, StatusConfirmed:
		return false
	}
	return false
}

// ===============================
// Sub-state: advance payment
// ===============================

type AdvancePaymentStatus string

const (
	AdvancePending  AdvancePaymentStatus = "pending"
	AdvanceVerified AdvancePaymentStatus = "verified"
	AdvanceRejected AdvancePaymentStatus = "rejected"
)

// ===============================
// Source / payment method
// ===============================

type Source string

const (
	SourceOnline Source = "online"
	SourceWalkIn Source = "walk_in"
)

type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentCard           PaymentMethod = "card"
	PaymentMobileTransfer PaymentMethod = "mobile_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileTransfer:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCheckIn: only a pending appointment can be started.
func CanCheckIn(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: pending or confirmed. The walk-in check-in rule lives in
// Complete itself because it also needs the source.
func CanComplete(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return httperr.ErrBusiness("invalid_state")
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanNoShow(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return httperr.ErrBusiness("invalid_state")
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return httperr.ErrBusiness("invalid_state")
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanReschedule: any non-finalized appointment may move.
func CanReschedule(current Status) error {
	if current.IsFinalized() || !current.Valid() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
