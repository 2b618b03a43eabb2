package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error
	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {
	return r.assertNoTimeConflict(ctx, barberID, start, end, 0)
}

func (r *AppointmentGormRepository) AssertNoTimeConflictExcluding(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {
	return r.assertNoTimeConflict(ctx, barberID, start, end, excludeID)
}

// assertNoTimeConflict locks overlapping rows so two racing bookings can't
// both pass. Cancelled appointments free their slot; everything else
// blocks it.
func (r *AppointmentGormRepository) assertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status <> ? AND scheduled_at < ? AND (scheduled_at + (duration_min || ' minutes')::interval) > ?",
				barberID, string(domain.StatusCancelled), end, start,
			)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var conflicts []models.Appointment
		if err := q.Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}
		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// GetWorkingHours returns nil without error when the barber has no row for
// the weekday: a closed day is not a store failure.
func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			barberID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			barberID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	wh, err := r.GetWorkingHours(ctx, barberID, int(start.Weekday()))
	if err != nil {
		return false, err
	}
	return domain.WithinWorkingHours(wh, start, end), nil
}

func (r *AppointmentGormRepository) AverageActualDuration(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	sample int,
) (*float64, error) {

	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Raw(`
        SELECT AVG(actual_duration_min) FROM (
            SELECT actual_duration_min
            FROM appointments
            WHERE barber_id = ?
              AND service_id = ?
              AND status = ?
              AND actual_duration_min IS NOT NULL
            ORDER BY completed_at DESC
            LIMIT ?
        ) recent
    `, barberID, serviceID, string(domain.StatusCompleted), sample).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// --------------------------------------------------
// Promotions
// --------------------------------------------------

func (r *AppointmentGormRepository) ActivePromotions(
	ctx context.Context,
	barbershopID uint,
	weekday int,
) ([]models.Promotion, error) {

	var promos []models.Promotion
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND weekday = ? AND active = true",
			barbershopID, weekday,
		).
		Order("id ASC").
		Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}
