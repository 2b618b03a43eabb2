package dispatch

import (
	"context"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

// UsecaseStore adapts the transition usecases to the Store contract.
type UsecaseStore struct {
	checkIn  *ucAppointment.CheckInAppointment
	complete *ucAppointment.CompleteAppointment
	noShow   *ucAppointment.NoShowAppointment
}

func NewUsecaseStore(
	checkIn *ucAppointment.CheckInAppointment,
	complete *ucAppointment.CompleteAppointment,
	noShow *ucAppointment.NoShowAppointment,
) *UsecaseStore {
	return &UsecaseStore{
		checkIn:  checkIn,
		complete: complete,
		noShow:   noShow,
	}
}

func (s *UsecaseStore) Transition(
	ctx context.Context,
	rc ResourceContext,
	appointmentID uint,
	action Action,
	payload Payload,
) (*models.Appointment, error) {

	switch action {
	case ActionCheckIn:
		return s.checkIn.Execute(ctx, rc.BarbershopID, rc.BarberID, appointmentID)
	case ActionComplete:
		return s.complete.Execute(ctx, rc.BarbershopID, rc.BarberID, appointmentID, payload.PaymentMethod)
	case ActionNoShow:
		return s.noShow.Execute(ctx, rc.BarbershopID, rc.BarberID, appointmentID)
	}

	return nil, httperr.ErrBusiness("unknown_action")
}
