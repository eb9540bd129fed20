package availabilityRepo

import (
	"context"
	"errors"

	"bookable/models"
)

// ErrNotFound is returned when a business has no stored configuration.
var ErrNotFound = errors.New("availability configuration not found")

// Repository persists a business's availability template and scheduling
// constraints. Save commits both documents as a whole; callers rely on it
// never applying one without the other.
type Repository interface {
	GetAvailability(ctx context.Context, businessID string) (*models.BusinessAvailability, error)
	GetConstraints(ctx context.Context, businessID string) (*models.GlobalConstraints, error)
	Save(ctx context.Context, av models.BusinessAvailability, gc models.GlobalConstraints) error
}
