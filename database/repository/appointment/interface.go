package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"bookable/models"
)

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")

// Repository persists appointments. Appointments are never deleted; a
// cancellation is written through Update as a status change.
type Repository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	// ListBetween returns the business's appointments whose interval
	// overlaps [from, to). Cancelled appointments are included only when
	// includeCancelled is set.
	ListBetween(ctx context.Context, businessID string, from, to time.Time, includeCancelled bool) ([]models.Appointment, error)
}
