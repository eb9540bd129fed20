package models

import (
	"testing"
	"time"
)

func TestAppointmentExpiredAt(t *testing.T) {
	end := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	appt := Appointment{Status: StatusConfirmed, Start: end.Add(-time.Hour), End: end}

	if appt.ExpiredAt(end.Add(-time.Minute)) {
		t.Fatal("appointment still in progress reported expired")
	}
	if !appt.ExpiredAt(end) {
		t.Fatal("appointment at its end instant not reported expired")
	}
	if !appt.ExpiredAt(end.Add(time.Hour)) {
		t.Fatal("past appointment not reported expired")
	}

	// Only confirmed appointments expire.
	appt.Status = StatusPending
	if appt.ExpiredAt(end.Add(time.Hour)) {
		t.Fatal("pending appointment reported expired")
	}
	appt.Status = StatusCancelled
	if appt.ExpiredAt(end.Add(time.Hour)) {
		t.Fatal("cancelled appointment reported expired")
	}
}

func TestAppointmentActive(t *testing.T) {
	appt := Appointment{Status: StatusPending}
	if !appt.Active() {
		t.Fatal("pending appointment not active")
	}
	appt.Status = StatusConfirmed
	if !appt.Active() {
		t.Fatal("confirmed appointment not active")
	}
	appt.Status = StatusCancelled
	if appt.Active() {
		t.Fatal("cancelled appointment active")
	}
}

func TestBusinessAvailabilityLocation(t *testing.T) {
	if loc := (BusinessAvailability{}).Location(); loc != time.UTC {
		t.Fatalf("empty timezone resolved to %v", loc)
	}
	if loc := (BusinessAvailability{Timezone: "bogus/zone"}).Location(); loc != time.UTC {
		t.Fatalf("bogus timezone resolved to %v", loc)
	}
	loc := (BusinessAvailability{Timezone: "America/New_York"}).Location()
	if loc.String() != "America/New_York" {
		t.Fatalf("timezone resolved to %v", loc)
	}
}

func TestDefaultWeekSchedule(t *testing.T) {
	week := DefaultWeekSchedule()
	if week[time.Sunday].IsOpen {
		t.Fatal("default Sunday should be closed")
	}
	for d := time.Monday; d <= time.Saturday; d++ {
		day := week[d]
		if !day.IsOpen || day.Open != 9*60 || day.Close != 17*60 {
			t.Fatalf("%s = %+v, want open 09:00-17:00", d, day)
		}
	}
}
