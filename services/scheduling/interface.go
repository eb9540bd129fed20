package scheduling

import (
	"context"
	"time"

	"bookable/models"
)

// BookingRequest carries everything needed to book a slot.
type BookingRequest struct {
	BusinessID string
	CustomerID string
	Actor      models.Actor
	Start      time.Time // UTC start of the chosen slot
	Title      string
	Notes      string
}

// AppointmentChanges is a partial update; nil fields are left untouched.
// When Start is set without End the appointment keeps its duration.
type AppointmentChanges struct {
	Start  *time.Time
	End    *time.Time
	Title  *string
	Notes  *string
	Status *models.AppointmentStatus
}

// SchedulingService is the single entry point external collaborators use.
// All mutating operations run inside the per-business critical section;
// reads do not block on it and callers must tolerate immediately-stale
// results (booking re-validates under the lock).
type SchedulingService interface {
	SetAvailability(ctx context.Context, businessID string, week models.WeekSchedule, overrides map[string]models.DayAvailability, timezone string, gc models.GlobalConstraints) error
	ValidateAvailability(week models.WeekSchedule, overrides map[string]models.DayAvailability, timezone string) []models.ValidationError
	ResolveDay(ctx context.Context, businessID string, date time.Time) (models.DayAvailability, error)
	ListAvailableSlots(ctx context.Context, businessID string, rng models.DateRange) ([]models.SlotCandidate, error)
	BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, changes AppointmentChanges, actor models.Actor) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string, actor models.Actor) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, businessID string, rng models.DateRange) ([]models.Appointment, error)
}

// ReminderScheduler enqueues an appointment reminder. Implementations live
// outside the engine (asynq worker); failures are logged, never propagated
// into a transition.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}
