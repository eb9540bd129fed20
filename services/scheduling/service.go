package scheduling

import (
	"context"
	"errors"
	"time"

	"bookable/config"
	appointmentRepo "bookable/database/repository/appointment"
	availabilityRepo "bookable/database/repository/availability"
	"bookable/models"
	"bookable/services/notification"
	"bookable/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Policy holds the engine-wide fallbacks for per-business constraints plus
// the operational knobs of the engine itself.
type Policy struct {
	Defaults    models.GlobalConstraints
	HorizonDays int
	LockWait    time.Duration
}

// PolicyFromConfig builds the engine policy from loaded configuration.
func PolicyFromConfig() Policy {
	cfg := config.AppConfig
	return Policy{
		Defaults: models.GlobalConstraints{
			MaxHoursPerDay:  cfg.DefaultMaxHoursPerDay,
			MaxHoursPerWeek: cfg.DefaultMaxHoursPerWeek,
			DurationMin:     cfg.DefaultDurationMin,
			BufferMin:       cfg.DefaultBufferMin,
			LeadTimeMin:     cfg.DefaultLeadTimeMin,
			CancelWindowMin: cfg.DefaultCancelWindowMin,
		},
		HorizonDays: cfg.BookingHorizonDays,
		LockWait:    time.Duration(cfg.BusinessLockWaitSeconds) * time.Second,
	}
}

// DefaultSchedulingService is the production implementation of
// SchedulingService.
type DefaultSchedulingService struct {
	Availability availabilityRepo.Repository
	Appointments appointmentRepo.Repository
	Resolver     *ConflictResolver
	Notifier     notification.NotificationService
	Reminders    ReminderScheduler // optional

	policy Policy
	locks  *businessLocks
	now    func() time.Time
}

// NewDefaultSchedulingService wires the engine together.
func NewDefaultSchedulingService(
	availability availabilityRepo.Repository,
	appointments appointmentRepo.Repository,
	notifier notification.NotificationService,
	reminders ReminderScheduler,
	policy Policy,
) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Availability: availability,
		Appointments: appointments,
		Resolver:     &ConflictResolver{Appointments: appointments},
		Notifier:     notifier,
		Reminders:    reminders,
		policy:       policy,
		locks:        newBusinessLocks(),
		now:          time.Now,
	}
}

// effective fills zero-valued constraint fields from the engine defaults.
func (s *DefaultSchedulingService) effective(gc models.GlobalConstraints) models.GlobalConstraints {
	d := s.policy.Defaults
	if gc.MaxHoursPerDay == 0 {
		gc.MaxHoursPerDay = d.MaxHoursPerDay
	}
	if gc.MaxHoursPerWeek == 0 {
		gc.MaxHoursPerWeek = d.MaxHoursPerWeek
	}
	if gc.DurationMin == 0 {
		gc.DurationMin = d.DurationMin
	}
	if gc.BufferMin == 0 {
		gc.BufferMin = d.BufferMin
	}
	if gc.LeadTimeMin == 0 {
		gc.LeadTimeMin = d.LeadTimeMin
	}
	if gc.CancelWindowMin == 0 {
		gc.CancelWindowMin = d.CancelWindowMin
	}
	return gc
}

func (s *DefaultSchedulingService) loadConfig(ctx context.Context, businessID string) (*models.BusinessAvailability, models.GlobalConstraints, error) {
	av, err := s.Availability.GetAvailability(ctx, businessID)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		return nil, models.GlobalConstraints{}, errNotFound("business %s has no availability configured", businessID)
	}
	if err != nil {
		return nil, models.GlobalConstraints{}, err
	}
	gc, err := s.Availability.GetConstraints(ctx, businessID)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		gc = &models.GlobalConstraints{BusinessID: businessID}
	} else if err != nil {
		return nil, models.GlobalConstraints{}, err
	}
	return av, s.effective(*gc), nil
}

// ValidateAvailability runs the schedule validation without touching storage.
func (s *DefaultSchedulingService) ValidateAvailability(week models.WeekSchedule, overrides map[string]models.DayAvailability, timezone string) []models.ValidationError {
	return ValidateSchedule(week, overrides, timezone)
}

// SetAvailability validates and commits a business's schedule and
// constraints as a whole. It takes effect for all future queries; already
// committed appointments are untouched.
func (s *DefaultSchedulingService) SetAvailability(ctx context.Context, businessID string, week models.WeekSchedule, overrides map[string]models.DayAvailability, timezone string, gc models.GlobalConstraints) error {
	if businessID == "" {
		return errInvalidInput("business id is required")
	}
	if verrs := ValidateSchedule(week, overrides, timezone); len(verrs) > 0 {
		return errInvalidInput("schedule is invalid: %s (%s)", verrs[0].Message, verrs[0].Field)
	}
	if gc.MaxHoursPerDay < 0 || gc.MaxHoursPerWeek < 0 || gc.DurationMin < 0 || gc.BufferMin < 0 || gc.LeadTimeMin < 0 || gc.CancelWindowMin < 0 {
		return errInvalidInput("constraints must not be negative")
	}

	release, err := s.locks.acquire(ctx, businessID, s.policy.LockWait)
	if err != nil {
		return err
	}
	defer release()

	now := s.now().UTC()
	av := models.BusinessAvailability{
		BusinessID: businessID,
		Week:       week,
		Overrides:  overrides,
		Timezone:   timezone,
		UpdatedAt:  now,
	}
	gc.BusinessID = businessID
	gc.UpdatedAt = now
	return s.Availability.Save(ctx, av, gc)
}

// ResolveDay answers what hours the business keeps on the given date:
// the override if present, else the weekly template entry.
func (s *DefaultSchedulingService) ResolveDay(ctx context.Context, businessID string, date time.Time) (models.DayAvailability, error) {
	av, _, err := s.loadConfig(ctx, businessID)
	if err != nil {
		return models.DayAvailability{}, err
	}
	// The date names a business-local calendar day. Rebuild it from its
	// components rather than instant-converting, so a caller-side UTC
	// midnight does not slide into the previous local day.
	localDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, av.Location())
	return ResolveDay(*av, localDay), nil
}

// ListAvailableSlots generates the candidate slots for the range and drops
// every candidate that would conflict with an existing appointment. The
// result may go stale immediately under concurrent writes; BookAppointment
// re-validates inside the critical section.
func (s *DefaultSchedulingService) ListAvailableSlots(ctx context.Context, businessID string, rng models.DateRange) ([]models.SlotCandidate, error) {
	if !rng.Valid() {
		return nil, errInvalidInput("date range end must be after start")
	}
	av, gc, err := s.loadConfig(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizon := now.AddDate(0, 0, s.policy.HorizonDays)
	if rng.To.After(horizon) {
		rng.To = horizon
	}

	buffer := time.Duration(gc.BufferMin) * time.Minute
	candidates := GenerateSlots(*av, rng, SlotPolicy{
		Duration: time.Duration(gc.DurationMin) * time.Minute,
		Buffer:   buffer,
		Lead:     time.Duration(gc.LeadTimeMin) * time.Minute,
	}, now)
	if len(candidates) == 0 {
		return nil, nil
	}

	// One fetch covers every candidate's buffer-expanded neighborhood.
	existing, err := s.Appointments.ListBetween(ctx, businessID, rng.From.Add(-buffer), rng.To.Add(buffer), false)
	if err != nil {
		return nil, err
	}

	slots := candidates[:0]
	for _, c := range candidates {
		if CheckAgainst(existing, c.Start, c.End, buffer, "") != nil {
			continue
		}
		slots = append(slots, c)
	}
	return slots, nil
}

// BookAppointment books the slot starting at req.Start. The slot must be
// one the generator would offer; the availability read, conflict and
// capacity checks, and the write all run inside the per-business critical
// section, so two concurrent requests for overlapping slots can never both
// commit and a concurrent schedule change cannot be raced past.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if req.BusinessID == "" || req.CustomerID == "" {
		return nil, errInvalidInput("business id and customer id are required")
	}
	if req.Start.IsZero() {
		return nil, errInvalidInput("slot start is required")
	}
	if req.Actor.Role == models.RoleCustomer && req.Actor.ID != req.CustomerID {
		return nil, errUnauthorized("customers may only book for themselves")
	}

	release, err := s.locks.acquire(ctx, req.BusinessID, s.policy.LockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	// Configuration is read inside the critical section: a concurrent
	// SetAvailability holds the same lock, so the slot is validated against
	// the configuration the booking will commit under.
	av, gc, err := s.loadConfig(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(gc.DurationMin) * time.Minute
	buffer := time.Duration(gc.BufferMin) * time.Minute
	start := req.Start.UTC()
	end := start.Add(duration)

	// The slot must come out of the generator for its day: this rejects
	// closed days, breaks, misaligned starts, and lead-time violations in
	// one pass.
	if !s.slotOffered(*av, gc, start, end) {
		return nil, errInvalidInput("slot starting %s is not bookable", start.Format(time.RFC3339))
	}

	if err := s.Resolver.Check(ctx, req.BusinessID, start, end, buffer, ""); err != nil {
		return nil, err
	}
	if err := s.Resolver.CheckCapacity(ctx, req.BusinessID, start, end, gc, av.Location(), ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	appt := &models.Appointment{
		ID:         uuid.New().String(),
		BusinessID: req.BusinessID,
		CustomerID: req.CustomerID,
		Start:      start,
		End:        end,
		Status:     InitialStatus(req.Actor.Role, gc.AutoConfirm),
		Title:      req.Title,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, *appt, func(n notification.NotificationService) error {
		return n.AppointmentBooked(ctx, *appt)
	})
	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("businessID", appt.BusinessID),
		zap.String("status", string(appt.Status)))
	return appt, nil
}

// slotOffered reports whether the generator would emit exactly [start, end)
// for its business-local day.
func (s *DefaultSchedulingService) slotOffered(av models.BusinessAvailability, gc models.GlobalConstraints, start, end time.Time) bool {
	loc := av.Location()
	local := start.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	candidates := GenerateSlots(av, models.DateRange{From: day.UTC(), To: day.AddDate(0, 0, 1).UTC()}, SlotPolicy{
		Duration: time.Duration(gc.DurationMin) * time.Minute,
		Buffer:   time.Duration(gc.BufferMin) * time.Minute,
		Lead:     time.Duration(gc.LeadTimeMin) * time.Minute,
	}, s.now())
	for _, c := range candidates {
		if c.Start.Equal(start) && c.End.Equal(end) {
			return true
		}
	}
	return false
}

// UpdateAppointment applies a partial update: time changes re-run the
// conflict and capacity checks excluding the appointment itself, status
// changes go through the transition table, and everything commits together
// or not at all.
func (s *DefaultSchedulingService) UpdateAppointment(ctx context.Context, id string, changes AppointmentChanges, actor models.Actor) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCustomer && actor.ID != appt.CustomerID {
		return nil, errUnauthorized("customers may only modify their own appointments")
	}

	release, err := s.locks.acquire(ctx, appt.BusinessID, s.policy.LockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read inside the critical section; a concurrent mutation may have
	// landed while we waited.
	appt, err = s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	av, gc, err := s.loadConfig(ctx, appt.BusinessID)
	if err != nil {
		return nil, err
	}
	buffer := time.Duration(gc.BufferMin) * time.Minute
	now := s.now().UTC()
	updated := *appt

	if changes.Start != nil || changes.End != nil {
		if updated.Status == models.StatusCancelled {
			return nil, errInvalidInput("cancelled appointments cannot be rescheduled")
		}
		start, end := updated.Start, updated.End
		if changes.Start != nil {
			duration := end.Sub(start)
			start = changes.Start.UTC()
			end = start.Add(duration)
		}
		if changes.End != nil {
			end = changes.End.UTC()
		}
		if !end.After(start) {
			return nil, errInvalidInput("appointment end must be after start")
		}
		if err := s.Resolver.Check(ctx, updated.BusinessID, start, end, buffer, updated.ID); err != nil {
			return nil, err
		}
		if err := s.Resolver.CheckCapacity(ctx, updated.BusinessID, start, end, gc, av.Location(), updated.ID); err != nil {
			return nil, err
		}
		updated.Start, updated.End = start, end
	}

	statusChanged := false
	if changes.Status != nil && *changes.Status != updated.Status {
		if *changes.Status == models.StatusConfirmed {
			// Confirming must not collide with appointments that landed
			// since this one was created.
			if err := s.Resolver.Check(ctx, updated.BusinessID, updated.Start, updated.End, buffer, updated.ID); err != nil {
				return nil, err
			}
		}
		window := time.Duration(gc.CancelWindowMin) * time.Minute
		if err := Transition(&updated, *changes.Status, actor, now, window); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if changes.Title != nil {
		updated.Title = *changes.Title
	}
	if changes.Notes != nil {
		updated.Notes = *changes.Notes
	}
	updated.UpdatedAt = now

	if err := s.Appointments.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyTransition(ctx, updated)
	}
	return &updated, nil
}

// CancelAppointment applies the transition into Cancelled. Cancelling an
// already-cancelled appointment is idempotent and returns the terminal
// state unchanged.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, id string, actor models.Actor) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := s.locks.acquire(ctx, appt.BusinessID, s.policy.LockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	appt, err = s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCustomer && actor.ID != appt.CustomerID {
		return nil, errUnauthorized("customers may only cancel their own appointments")
	}
	if appt.Status == models.StatusCancelled {
		return appt, nil
	}

	_, gc, err := s.loadConfig(ctx, appt.BusinessID)
	if err != nil {
		return nil, err
	}
	window := time.Duration(gc.CancelWindowMin) * time.Minute

	updated := *appt
	if err := Transition(&updated, models.StatusCancelled, actor, s.now().UTC(), window); err != nil {
		return nil, err
	}
	if err := s.Appointments.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, updated)
	return &updated, nil
}

// GetAppointment returns a single appointment by id.
func (s *DefaultSchedulingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// ListAppointments returns the business's appointments overlapping the
// range, cancelled ones included: the calendar shows them and ids must stay
// visible for audit.
func (s *DefaultSchedulingService) ListAppointments(ctx context.Context, businessID string, rng models.DateRange) ([]models.Appointment, error) {
	if !rng.Valid() {
		return nil, errInvalidInput("date range end must be after start")
	}
	return s.Appointments.ListBetween(ctx, businessID, rng.From, rng.To, true)
}

func (s *DefaultSchedulingService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, errNotFound("appointment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// afterCommit runs post-commit side effects: notification, and a reminder
// for confirmed appointments. Failures here are logged and swallowed; the
// transition has already committed.
func (s *DefaultSchedulingService) afterCommit(ctx context.Context, appt models.Appointment, notify func(notification.NotificationService) error) {
	logger := utils.GetLogger()
	if s.Notifier != nil {
		if err := notify(s.Notifier); err != nil {
			logger.Warn("notification failed", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil && appt.Status == models.StatusConfirmed {
		if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
			logger.Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
}

func (s *DefaultSchedulingService) notifyTransition(ctx context.Context, appt models.Appointment) {
	switch appt.Status {
	case models.StatusConfirmed:
		s.afterCommit(ctx, appt, func(n notification.NotificationService) error {
			return n.AppointmentConfirmed(ctx, appt)
		})
	case models.StatusCancelled:
		s.afterCommit(ctx, appt, func(n notification.NotificationService) error {
			return n.AppointmentCancelled(ctx, appt)
		})
	}
}
