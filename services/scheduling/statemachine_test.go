package scheduling

import (
	"testing"
	"time"

	"bookable/models"
)

func TestInitialStatus(t *testing.T) {
	cases := []struct {
		role        models.ActorRole
		autoConfirm bool
		want        models.AppointmentStatus
	}{
		{models.RoleCustomer, false, models.StatusPending},
		{models.RoleCustomer, true, models.StatusConfirmed},
		{models.RoleBusiness, false, models.StatusConfirmed},
		{models.RoleBusiness, true, models.StatusConfirmed},
	}
	for _, c := range cases {
		if got := InitialStatus(c.role, c.autoConfirm); got != c.want {
			t.Errorf("InitialStatus(%s, autoConfirm=%v) = %s, want %s", c.role, c.autoConfirm, got, c.want)
		}
	}
}

func testAppointment(status models.AppointmentStatus, start time.Time) models.Appointment {
	return models.Appointment{
		ID:         "appt-1",
		BusinessID: "biz-1",
		CustomerID: "cust-1",
		Start:      start,
		End:        start.Add(time.Hour),
		Status:     status,
	}
}

func TestTransition_ConfirmRequiresBusiness(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	start := now.AddDate(0, 0, 2)

	appt := testAppointment(models.StatusPending, start)
	err := Transition(&appt, models.StatusConfirmed, models.Actor{ID: "cust-1", Role: models.RoleCustomer}, now, 24*time.Hour)
	if CodeOf(err) != CodeUnauthorized {
		t.Fatalf("customer confirm: code = %q, want unauthorized", CodeOf(err))
	}
	if appt.Status != models.StatusPending {
		t.Fatal("rejected transition must not mutate the appointment")
	}

	err = Transition(&appt, models.StatusConfirmed, models.Actor{ID: "biz-1", Role: models.RoleBusiness}, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("business confirm failed: %v", err)
	}
	if appt.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", appt.Status)
	}
	if !appt.UpdatedAt.Equal(now) {
		t.Fatal("UpdatedAt not stamped")
	}
}

func TestTransition_CustomerCancelOutsideWindow(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	start := now.Add(48 * time.Hour)

	appt := testAppointment(models.StatusConfirmed, start)
	err := Transition(&appt, models.StatusCancelled, models.Actor{ID: "cust-1", Role: models.RoleCustomer}, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("cancel with 48h notice failed: %v", err)
	}
	if appt.Status != models.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", appt.Status)
	}
	if appt.CancelledAt == nil || !appt.CancelledAt.Equal(now) {
		t.Fatal("CancelledAt not recorded")
	}
	if appt.CancelledBy != models.RoleCustomer {
		t.Fatalf("CancelledBy = %s, want customer", appt.CancelledBy)
	}
}

func TestTransition_CustomerCancelInsideWindow(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	start := now.Add(6 * time.Hour)

	appt := testAppointment(models.StatusConfirmed, start)
	err := Transition(&appt, models.StatusCancelled, models.Actor{ID: "cust-1", Role: models.RoleCustomer}, now, 24*time.Hour)
	if CodeOf(err) != CodePolicyViolation {
		t.Fatalf("code = %q, want policy_violation", CodeOf(err))
	}
	if appt.Status != models.StatusConfirmed {
		t.Fatal("rejected cancel must not mutate the appointment")
	}
}

func TestTransition_BusinessCancelIgnoresWindow(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	start := now.Add(30 * time.Minute)

	appt := testAppointment(models.StatusConfirmed, start)
	err := Transition(&appt, models.StatusCancelled, models.Actor{ID: "biz-1", Role: models.RoleBusiness}, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("business cancel failed: %v", err)
	}
	if appt.CancelledBy != models.RoleBusiness {
		t.Fatalf("CancelledBy = %s, want business", appt.CancelledBy)
	}
}

func TestTransition_CustomerCannotCancelOthers(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	appt := testAppointment(models.StatusPending, now.Add(72*time.Hour))

	err := Transition(&appt, models.StatusCancelled, models.Actor{ID: "someone-else", Role: models.RoleCustomer}, now, 24*time.Hour)
	if CodeOf(err) != CodeUnauthorized {
		t.Fatalf("code = %q, want unauthorized", CodeOf(err))
	}
}

func TestTransition_CancelledIsTerminal(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	business := models.Actor{ID: "biz-1", Role: models.RoleBusiness}

	appt := testAppointment(models.StatusCancelled, now.Add(72*time.Hour))
	if err := Transition(&appt, models.StatusCancelled, business, now, 24*time.Hour); err != nil {
		t.Fatalf("re-cancel must be a no-op, got %v", err)
	}
	if appt.Status != models.StatusCancelled {
		t.Fatal("idempotent cancel changed status")
	}

	for _, to := range []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed} {
		if err := Transition(&appt, to, business, now, 24*time.Hour); CodeOf(err) != CodeInvalidInput {
			t.Errorf("cancelled -> %s: code = %q, want invalid_input", to, CodeOf(err))
		}
	}
}

func TestTransition_ConfirmedToPendingRejected(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	appt := testAppointment(models.StatusConfirmed, now.Add(72*time.Hour))

	err := Transition(&appt, models.StatusPending, models.Actor{ID: "biz-1", Role: models.RoleBusiness}, now, 24*time.Hour)
	if CodeOf(err) != CodeInvalidInput {
		t.Fatalf("code = %q, want invalid_input", CodeOf(err))
	}
}
