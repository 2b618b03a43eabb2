package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// fakeRepo is an in-memory Repository for usecase tests.
type fakeRepo struct {
	shop     *models.Barbershop
	services map[uint]*models.Service
	hours    map[int]*models.WorkingHours
	aps      []models.Appointment
	promos   []models.Promotion
	avg      *float64

	hoursErr error
	listErr  error
	avgErr   error

	conflict bool

	created []*models.Appointment
	updated []*models.Appointment
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	if r.shop == nil || r.shop.ID != id {
		return nil, errors.New("not found")
	}
	return r.shop, nil
}

func (r *fakeRepo) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	if r.shop == nil || r.shop.Slug != slug {
		return nil, errors.New("not found")
	}
	return r.shop, nil
}

func (r *fakeRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 90, BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = uint(len(r.aps) + 100)
	r.aps = append(r.aps, *ap)
	r.created = append(r.created, ap)
	return nil
}

func (r *fakeRepo) AssertNoTimeConflict(ctx context.Context, barberID uint, start, end time.Time) error {
	if r.conflict {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *fakeRepo) AssertNoTimeConflictExcluding(ctx context.Context, barberID uint, start, end time.Time, excludeID uint) error {
	if r.conflict {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *fakeRepo) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	for i := range r.aps {
		if r.aps[i].ID == appointmentID {
			ap := r.aps[i]
			return &ap, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return r.GetAppointmentForBarber(ctx, appointmentID, 0)
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	for i := range r.aps {
		if r.aps[i].ID == ap.ID {
			r.aps[i] = *ap
		}
	}
	r.updated = append(r.updated, ap)
	return nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	if r.hoursErr != nil {
		return nil, r.hoursErr
	}
	return r.hours[weekday], nil
}

func (r *fakeRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.listWindow(start, end)
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.listWindow(start, end)
}

func (r *fakeRepo) listWindow(start, end time.Time) ([]models.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Appointment
	for i := range r.aps {
		at := r.aps[i].ScheduledAt
		if !at.Before(start) && at.Before(end) {
			out = append(out, r.aps[i])
		}
	}
	return out, nil
}

func (r *fakeRepo) IsWithinWorkingHours(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	if r.hoursErr != nil {
		return false, r.hoursErr
	}
	wh := r.hours[int(start.Weekday())]
	return domain.WithinWorkingHours(wh, start, end), nil
}

func (r *fakeRepo) AverageActualDuration(ctx context.Context, barberID, serviceID uint, sample int) (*float64, error) {
	if r.avgErr != nil {
		return nil, r.avgErr
	}
	return r.avg, nil
}

func (r *fakeRepo) ActivePromotions(ctx context.Context, barbershopID uint, weekday int) ([]models.Promotion, error) {
	var out []models.Promotion
	for i := range r.promos {
		if r.promos[i].Weekday == weekday && r.promos[i].Active {
			out = append(out, r.promos[i])
		}
	}
	return out, nil
}
