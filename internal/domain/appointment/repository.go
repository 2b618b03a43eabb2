package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	// AssertNoTimeConflictExcluding ignores one appointment id: the row
	// being rescheduled must not collide with itself.
	AssertNoTimeConflictExcluding(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	IsWithinWorkingHours(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// AverageActualDuration returns the rolling mean of the last `sample`
	// completed actual durations for (barber, service), or nil when there
	// is no history yet.
	AverageActualDuration(
		ctx context.Context,
		barberID uint,
		serviceID uint,
		sample int,
	) (*float64, error)

	// -------- Promotions --------
	ActivePromotions(
		ctx context.Context,
		barbershopID uint,
		weekday int,
	) ([]models.Promotion, error)
}
