package scheduling

import (
	"time"

	"bookable/models"
)

// InitialStatus applies the creation rule: a business books straight into
// Confirmed, as does a customer when the business auto-confirms; otherwise
// the appointment starts Pending.
func InitialStatus(role models.ActorRole, autoConfirm bool) models.AppointmentStatus {
	if role == models.RoleBusiness || autoConfirm {
		return models.StatusConfirmed
	}
	return models.StatusPending
}

// Transition applies a status change to appt in place, enforcing the
// role-based transition table. Cancelled is terminal: re-cancelling an
// already-cancelled appointment is an idempotent no-op; every other
// transition out of Cancelled is rejected. The cancellation window binds
// customer actors only.
//
// Conflict-sensitive transitions (re-confirming a pending appointment) are
// checked by the caller against the conflict resolver before committing.
func Transition(appt *models.Appointment, to models.AppointmentStatus, actor models.Actor, now time.Time, cancelWindow time.Duration) error {
	from := appt.Status
	if from == to {
		if from == models.StatusCancelled {
			// Idempotent terminal state.
			return nil
		}
		return nil
	}

	switch {
	case from == models.StatusPending && to == models.StatusConfirmed:
		if actor.Role != models.RoleBusiness {
			return errUnauthorized("only the business may confirm an appointment")
		}

	case to == models.StatusCancelled:
		switch actor.Role {
		case models.RoleBusiness:
			// The business may cancel at any time.
		case models.RoleCustomer:
			if actor.ID != appt.CustomerID {
				return errUnauthorized("customers may only cancel their own appointments")
			}
			if appt.Start.Sub(now) < cancelWindow {
				return errPolicyViolation("cancellation requires %s notice before the appointment starts", cancelWindow)
			}
		default:
			return errUnauthorized("unknown actor role %q", actor.Role)
		}
		cancelledAt := now
		appt.CancelledAt = &cancelledAt
		appt.CancelledBy = actor.Role

	default:
		return errInvalidInput("illegal transition %s -> %s", from, to)
	}

	appt.Status = to
	appt.UpdatedAt = now
	return nil
}
