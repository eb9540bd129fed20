package appointmentRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookable/models"
)

// memoryAppointmentRepo is an in-process Repository for tests and local
// development.
type memoryAppointmentRepo struct {
	mu    sync.RWMutex
	byID  map[string]models.Appointment
	order []string // insertion order, for stable listings
}

// NewMemoryAppointmentRepo constructs an empty in-memory Repository.
func NewMemoryAppointmentRepo() Repository {
	return &memoryAppointmentRepo{
		byID: make(map[string]models.Appointment),
	}
}

func (r *memoryAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[appt.ID] = *appt
	r.order = append(r.order, appt.ID)
	return nil
}

func (r *memoryAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appt, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

func (r *memoryAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[appt.ID]; !ok {
		return ErrNotFound
	}
	r.byID[appt.ID] = *appt
	return nil
}

func (r *memoryAppointmentRepo) ListBetween(ctx context.Context, businessID string, from, to time.Time, includeCancelled bool) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appts []models.Appointment
	for _, id := range r.order {
		a := r.byID[id]
		if a.BusinessID != businessID {
			continue
		}
		if !a.Start.Before(to) || !a.End.After(from) {
			continue
		}
		if !includeCancelled && a.Status == models.StatusCancelled {
			continue
		}
		appts = append(appts, a)
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
	return appts, nil
}
