package availabilityRepo

import (
	"context"
	"sync"

	"bookable/models"
)

// memoryAvailabilityRepo is an in-process Repository used by tests and local
// development. The store collaborator is external to the engine, so the
// engine's behavior must be identical against either implementation.
type memoryAvailabilityRepo struct {
	mu           sync.RWMutex
	availability map[string]models.BusinessAvailability
	constraints  map[string]models.GlobalConstraints
}

// NewMemoryAvailabilityRepo constructs an empty in-memory Repository.
func NewMemoryAvailabilityRepo() Repository {
	return &memoryAvailabilityRepo{
		availability: make(map[string]models.BusinessAvailability),
		constraints:  make(map[string]models.GlobalConstraints),
	}
}

func (r *memoryAvailabilityRepo) GetAvailability(ctx context.Context, businessID string) (*models.BusinessAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	av, ok := r.availability[businessID]
	if !ok {
		return nil, ErrNotFound
	}
	return &av, nil
}

func (r *memoryAvailabilityRepo) GetConstraints(ctx context.Context, businessID string) (*models.GlobalConstraints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gc, ok := r.constraints[businessID]
	if !ok {
		return nil, ErrNotFound
	}
	return &gc, nil
}

func (r *memoryAvailabilityRepo) Save(ctx context.Context, av models.BusinessAvailability, gc models.GlobalConstraints) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.availability[av.BusinessID] = av
	r.constraints[gc.BusinessID] = gc
	return nil
}
