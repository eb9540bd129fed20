package scheduling

import (
	"time"

	"bookable/models"
)

// SlotPolicy carries the effective constraints slot generation runs under.
type SlotPolicy struct {
	Duration time.Duration
	Buffer   time.Duration
	Lead     time.Duration
}

// GenerateSlots produces every candidate bookable interval for the business
// inside rng, ascending by date then start time. It is deterministic from
// its inputs: the same configuration, range and now always yield the same
// sequence.
//
// Per business-local day: closed days contribute nothing; otherwise the
// breaks are subtracted from [open, close) and consecutive slots of
// policy.Duration are emitted within each free sub-interval, stepping by
// Duration+Buffer so the buffer is embedded in the walk rather than checked
// afterwards. Slots starting before now+Lead are omitted.
func GenerateSlots(av models.BusinessAvailability, rng models.DateRange, policy SlotPolicy, now time.Time) []models.SlotCandidate {
	if !rng.Valid() || policy.Duration <= 0 {
		return nil
	}

	loc := av.Location()
	earliest := now.Add(policy.Lead)

	var slots []models.SlotCandidate

	// Walk business-local midnights covering the range.
	first := rng.From.In(loc)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	for ; day.Before(rng.To.In(loc)); day = day.AddDate(0, 0, 1) {
		avail := ResolveDay(av, day)
		if !avail.IsOpen {
			continue
		}

		for _, free := range freeIntervals(avail) {
			for cursor := free.Start; cursor+minutes(policy.Duration) <= free.End; cursor += minutes(policy.Duration) + minutes(policy.Buffer) {
				// Built from wall-clock components, not midnight plus an
				// offset: on a DST transition day the two disagree and the
				// schedule means local wall-clock time.
				start := time.Date(day.Year(), day.Month(), day.Day(), cursor/60, cursor%60, 0, 0, loc)
				end := start.Add(policy.Duration)
				if start.Before(earliest) {
					continue
				}
				if start.Before(rng.From) || end.After(rng.To) {
					continue
				}
				slots = append(slots, models.SlotCandidate{
					Start:     start.UTC(),
					End:       end.UTC(),
					Available: true,
				})
			}
		}
	}
	return slots
}

// freeIntervals subtracts the day's breaks from its open window, preserving
// order. Breaks are already validated ordered and disjoint.
func freeIntervals(day models.DayAvailability) []models.BreakInterval {
	free := []models.BreakInterval{}
	cursor := day.Open
	for _, br := range day.Breaks {
		if br.Start > cursor {
			free = append(free, models.BreakInterval{Start: cursor, End: br.Start})
		}
		if br.End > cursor {
			cursor = br.End
		}
	}
	if cursor < day.Close {
		free = append(free, models.BreakInterval{Start: cursor, End: day.Close})
	}
	return free
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
