package scheduling

import (
	"fmt"
	"sort"
	"time"

	"bookable/models"
	"bookable/utils"
)

const dateKeyLayout = "2006-01-02"

// ResolveDay returns the availability for one business-local calendar day:
// the date override if present, else the weekly template entry for that
// weekday. Pure function over stored configuration.
func ResolveDay(av models.BusinessAvailability, localDay time.Time) models.DayAvailability {
	if day, ok := av.Overrides[localDay.Format(dateKeyLayout)]; ok {
		return day
	}
	return av.Week[localDay.Weekday()]
}

// ValidateSchedule checks the structural invariants of a submitted
// availability configuration: open < close on open days, breaks pairwise
// disjoint and strictly inside the open window, overrides well-formed, and
// a resolvable timezone. It returns every violation found, not just the
// first, so the whole form can be reported back at once.
func ValidateSchedule(week models.WeekSchedule, overrides map[string]models.DayAvailability, timezone string) []models.ValidationError {
	var errs []models.ValidationError

	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "timezone",
				Message: fmt.Sprintf("unknown timezone %q", timezone),
			})
		}
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		errs = append(errs, validateDay(d.String(), week[d])...)
	}

	// Deterministic order for override errors.
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := time.Parse(dateKeyLayout, k); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "overrides." + k,
				Message: "override date must be formatted YYYY-MM-DD",
			})
			continue
		}
		errs = append(errs, validateDay("overrides."+k, overrides[k])...)
	}
	return errs
}

func validateDay(field string, day models.DayAvailability) []models.ValidationError {
	if !day.IsOpen {
		// Closed days carry no further constraints.
		return nil
	}

	var errs []models.ValidationError
	if day.Open < 0 || day.Close > 24*60 {
		errs = append(errs, models.ValidationError{
			Field:   field,
			Message: "open hours must lie within the day",
		})
	}
	if day.Open >= day.Close {
		errs = append(errs, models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("open time %s must be before close time %s", utils.FormatClock(day.Open), utils.FormatClock(day.Close)),
		})
		return errs
	}

	prevEnd := -1
	for i, br := range day.Breaks {
		bf := fmt.Sprintf("%s.breaks[%d]", field, i)
		if br.Start >= br.End {
			errs = append(errs, models.ValidationError{
				Field:   bf,
				Message: fmt.Sprintf("break start %s must be before break end %s", utils.FormatClock(br.Start), utils.FormatClock(br.End)),
			})
			continue
		}
		if br.Start < day.Open || br.End > day.Close {
			errs = append(errs, models.ValidationError{
				Field:   bf,
				Message: "break must lie within open hours",
			})
		}
		if br.Start < prevEnd {
			errs = append(errs, models.ValidationError{
				Field:   bf,
				Message: "breaks must be ordered and non-overlapping",
			})
		}
		if br.End > prevEnd {
			prevEnd = br.End
		}
	}
	return errs
}
