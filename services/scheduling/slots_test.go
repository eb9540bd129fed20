package scheduling

import (
	"testing"
	"time"

	"bookable/models"
)

func utcDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func standardAvailability() models.BusinessAvailability {
	return models.BusinessAvailability{
		BusinessID: "biz-1",
		Week:       models.DefaultWeekSchedule(),
		Timezone:   "UTC",
	}
}

func standardPolicy() SlotPolicy {
	return SlotPolicy{Duration: 60 * time.Minute, Buffer: 15 * time.Minute}
}

// Monday 2026-03-02, open 09:00-17:00.
var monday = utcDate(2026, time.March, 2, 0, 0)

func mondayRange() models.DateRange {
	return models.DateRange{From: monday, To: monday.AddDate(0, 0, 1)}
}

func TestGenerateSlots_StandardDay(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	slots := GenerateSlots(standardAvailability(), mondayRange(), standardPolicy(), now)

	wantStarts := []time.Time{
		monday.Add(9 * time.Hour),
		monday.Add(10*time.Hour + 15*time.Minute),
		monday.Add(11*time.Hour + 30*time.Minute),
		monday.Add(12*time.Hour + 45*time.Minute),
		monday.Add(14 * time.Hour),
		monday.Add(15*time.Hour + 15*time.Minute),
	}
	if len(slots) != len(wantStarts) {
		t.Fatalf("expected %d slots, got %d", len(wantStarts), len(slots))
	}
	for i, want := range wantStarts {
		if !slots[i].Start.Equal(want) {
			t.Errorf("slot[%d] start = %s, want %s", i, slots[i].Start.Format(time.RFC3339), want.Format(time.RFC3339))
		}
		if !slots[i].End.Equal(want.Add(time.Hour)) {
			t.Errorf("slot[%d] end = %s, want %s", i, slots[i].End.Format(time.RFC3339), want.Add(time.Hour).Format(time.RFC3339))
		}
	}
}

func TestGenerateSlots_BreaksExcluded(t *testing.T) {
	av := standardAvailability()
	day := av.Week[time.Monday]
	day.Breaks = []models.BreakInterval{{Start: 12 * 60, End: 13 * 60}}
	av.Week[time.Monday] = day

	now := utcDate(2026, time.March, 1, 12, 0)
	slots := GenerateSlots(av, mondayRange(), standardPolicy(), now)

	wantStarts := []time.Time{
		monday.Add(9 * time.Hour),
		monday.Add(10*time.Hour + 15*time.Minute),
		monday.Add(13 * time.Hour),
		monday.Add(14*time.Hour + 15*time.Minute),
		monday.Add(15*time.Hour + 30*time.Minute),
	}
	if len(slots) != len(wantStarts) {
		t.Fatalf("expected %d slots, got %d", len(wantStarts), len(slots))
	}
	for i, want := range wantStarts {
		if !slots[i].Start.Equal(want) {
			t.Errorf("slot[%d] start = %s, want %s", i, slots[i].Start.Format(time.RFC3339), want.Format(time.RFC3339))
		}
		// No slot may touch the break.
		if slots[i].Start.Hour() == 12 {
			t.Errorf("slot[%d] starts inside the break", i)
		}
	}
}

func TestGenerateSlots_LeadTime(t *testing.T) {
	policy := standardPolicy()
	policy.Lead = time.Hour
	now := monday.Add(10 * time.Hour) // earliest bookable start is 11:00

	slots := GenerateSlots(standardAvailability(), mondayRange(), policy, now)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if want := monday.Add(11*time.Hour + 30*time.Minute); !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %s, want %s", slots[0].Start.Format(time.RFC3339), want.Format(time.RFC3339))
	}
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	sunday := utcDate(2026, time.March, 1, 0, 0)
	rng := models.DateRange{From: sunday, To: sunday.AddDate(0, 0, 1)}
	now := utcDate(2026, time.February, 20, 0, 0)

	if slots := GenerateSlots(standardAvailability(), rng, standardPolicy(), now); len(slots) != 0 {
		t.Fatalf("closed Sunday produced %d slots", len(slots))
	}
}

func TestGenerateSlots_OverrideOpensClosedDay(t *testing.T) {
	av := standardAvailability()
	av.Overrides = map[string]models.DayAvailability{
		"2026-03-01": {IsOpen: true, Open: 10 * 60, Close: 14 * 60},
	}
	sunday := utcDate(2026, time.March, 1, 0, 0)
	rng := models.DateRange{From: sunday, To: sunday.AddDate(0, 0, 1)}
	now := utcDate(2026, time.February, 20, 0, 0)

	slots := GenerateSlots(av, rng, standardPolicy(), now)
	wantStarts := []time.Time{
		sunday.Add(10 * time.Hour),
		sunday.Add(11*time.Hour + 15*time.Minute),
		sunday.Add(12*time.Hour + 30*time.Minute),
	}
	if len(slots) != len(wantStarts) {
		t.Fatalf("expected %d slots, got %d", len(wantStarts), len(slots))
	}
	for i, want := range wantStarts {
		if !slots[i].Start.Equal(want) {
			t.Errorf("slot[%d] start = %s, want %s", i, slots[i].Start.Format(time.RFC3339), want.Format(time.RFC3339))
		}
	}
}

func TestGenerateSlots_OverrideClosesOpenDay(t *testing.T) {
	av := standardAvailability()
	av.Overrides = map[string]models.DayAvailability{
		"2026-03-02": {IsOpen: false},
	}
	now := utcDate(2026, time.February, 20, 0, 0)

	if slots := GenerateSlots(av, mondayRange(), standardPolicy(), now); len(slots) != 0 {
		t.Fatalf("holiday override produced %d slots", len(slots))
	}
}

func TestGenerateSlots_BusinessLocalTime(t *testing.T) {
	av := standardAvailability()
	av.Timezone = "America/New_York"

	// Monday 2026-06-15, EDT (UTC-4): 09:00 local is 13:00 UTC.
	day := utcDate(2026, time.June, 15, 0, 0)
	rng := models.DateRange{From: day, To: day.AddDate(0, 0, 1)}
	now := utcDate(2026, time.June, 1, 0, 0)

	slots := GenerateSlots(av, rng, standardPolicy(), now)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if want := day.Add(13 * time.Hour); !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %s, want %s", slots[0].Start.Format(time.RFC3339), want.Format(time.RFC3339))
	}
	if slots[0].Start.Location() != time.UTC {
		t.Fatal("slot times must be returned in UTC")
	}
}

func TestGenerateSlots_DSTSpringForward(t *testing.T) {
	av := standardAvailability()
	av.Timezone = "America/New_York"
	// 2026-03-08: clocks jump 02:00 EST -> 03:00 EDT. Sunday is closed in
	// the template, so open it by override.
	av.Overrides = map[string]models.DayAvailability{
		"2026-03-08": {IsOpen: true, Open: 9 * 60, Close: 17 * 60},
	}

	day := utcDate(2026, time.March, 8, 0, 0)
	rng := models.DateRange{From: day, To: day.AddDate(0, 0, 1)}
	now := utcDate(2026, time.February, 20, 0, 0)

	slots := GenerateSlots(av, rng, standardPolicy(), now)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	// 09:00 EDT (UTC-4 after the transition) is 13:00 UTC. Midnight plus
	// nine hours would land on 10:00 local instead.
	if want := day.Add(13 * time.Hour); !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %s, want %s (09:00 local)", slots[0].Start.Format(time.RFC3339), want.Format(time.RFC3339))
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range slots {
		local := s.Start.In(loc)
		if local.Hour()*60+local.Minute() < 9*60 || local.Hour() >= 17 {
			t.Errorf("slot[%d] starts %s local, outside open hours", i, local.Format("15:04"))
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	a := GenerateSlots(standardAvailability(), mondayRange(), standardPolicy(), now)
	b := GenerateSlots(standardAvailability(), mondayRange(), standardPolicy(), now)
	if len(a) != len(b) {
		t.Fatalf("runs disagree on slot count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
			t.Fatalf("runs disagree at slot %d", i)
		}
	}
}

func TestGenerateSlots_InvalidInputs(t *testing.T) {
	now := utcDate(2026, time.March, 1, 12, 0)
	if slots := GenerateSlots(standardAvailability(), models.DateRange{From: monday, To: monday}, standardPolicy(), now); slots != nil {
		t.Fatal("empty range must produce no slots")
	}
	if slots := GenerateSlots(standardAvailability(), mondayRange(), SlotPolicy{}, now); slots != nil {
		t.Fatal("zero duration must produce no slots")
	}
}

func TestFreeIntervals(t *testing.T) {
	day := models.DayAvailability{
		IsOpen: true,
		Open:   9 * 60,
		Close:  17 * 60,
		Breaks: []models.BreakInterval{
			{Start: 11 * 60, End: 11*60 + 30},
			{Start: 13 * 60, End: 14 * 60},
		},
	}
	free := freeIntervals(day)
	want := []models.BreakInterval{
		{Start: 9 * 60, End: 11 * 60},
		{Start: 11*60 + 30, End: 13 * 60},
		{Start: 14 * 60, End: 17 * 60},
	}
	if len(free) != len(want) {
		t.Fatalf("expected %d free intervals, got %d", len(want), len(free))
	}
	for i := range want {
		if free[i] != want[i] {
			t.Errorf("free[%d] = %+v, want %+v", i, free[i], want[i])
		}
	}
}
