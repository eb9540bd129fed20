package scheduling

import (
	"context"
	"time"

	appointmentRepo "bookable/database/repository/appointment"
	"bookable/models"
)

// ConflictResolver checks candidate intervals against a business's existing
// non-cancelled appointments and against the aggregate hour caps. Both
// checks are read-only; the service holds the business critical section for
// the subsequent write.
type ConflictResolver struct {
	Appointments appointmentRepo.Repository
}

// Check rejects the candidate interval if it overlaps any existing
// non-cancelled appointment of the business, each expanded by buffer on
// both ends. excludeID skips the appointment being updated.
func (r *ConflictResolver) Check(ctx context.Context, businessID string, start, end time.Time, buffer time.Duration, excludeID string) error {
	// Fetch everything whose buffer-expanded interval could reach the candidate.
	existing, err := r.Appointments.ListBetween(ctx, businessID, start.Add(-buffer), end.Add(buffer), false)
	if err != nil {
		return err
	}
	return CheckAgainst(existing, start, end, buffer, excludeID)
}

// CheckAgainst is the pure form of Check, used when the caller already holds
// the appointment set (slot listings check hundreds of candidates against
// one fetch).
func CheckAgainst(existing []models.Appointment, start, end time.Time, buffer time.Duration, excludeID string) error {
	for _, a := range existing {
		if a.ID == excludeID || !a.Active() {
			continue
		}
		expandedStart := a.Start.Add(-buffer)
		expandedEnd := a.End.Add(buffer)
		// Half-open overlap test.
		if start.Before(expandedEnd) && expandedStart.Before(end) {
			return errConflict(a.ID, "interval overlaps appointment %s", a.ID)
		}
	}
	return nil
}

// CheckCapacity recomputes the day and week duration sums of pending and
// confirmed appointments including the candidate, in the business's local
// calendar, and rejects the candidate if either cap would be exceeded.
// Weeks run Monday through Sunday.
func (r *ConflictResolver) CheckCapacity(ctx context.Context, businessID string, start, end time.Time, gc models.GlobalConstraints, loc *time.Location, excludeID string) error {
	candidate := end.Sub(start)

	if gc.MaxHoursPerDay > 0 {
		localStart := start.In(loc)
		dayStart := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
		dayTotal, err := r.sumDurations(ctx, businessID, dayStart, dayStart.AddDate(0, 0, 1), excludeID)
		if err != nil {
			return err
		}
		if dayTotal+candidate > time.Duration(gc.MaxHoursPerDay)*time.Hour {
			return errPolicyViolation("booking would exceed the %dh daily cap", gc.MaxHoursPerDay)
		}
	}

	if gc.MaxHoursPerWeek > 0 {
		weekStart := startOfWeek(start.In(loc))
		weekTotal, err := r.sumDurations(ctx, businessID, weekStart, weekStart.AddDate(0, 0, 7), excludeID)
		if err != nil {
			return err
		}
		if weekTotal+candidate > time.Duration(gc.MaxHoursPerWeek)*time.Hour {
			return errPolicyViolation("booking would exceed the %dh weekly cap", gc.MaxHoursPerWeek)
		}
	}
	return nil
}

func (r *ConflictResolver) sumDurations(ctx context.Context, businessID string, from, to time.Time, excludeID string) (time.Duration, error) {
	appts, err := r.Appointments.ListBetween(ctx, businessID, from, to, false)
	if err != nil {
		return 0, err
	}
	var total time.Duration
	for _, a := range appts {
		if a.ID == excludeID {
			continue
		}
		total += a.End.Sub(a.Start)
	}
	return total, nil
}

// startOfWeek returns the local Monday midnight of t's week.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
