package models

import "time"

// BreakInterval is a sub-interval of a day's open window during which no
// slots are offered. Start and End are minutes from midnight, half-open.
type BreakInterval struct {
	Start int `bson:"start" json:"start"` // minutes from midnight (e.g. 720 for 12:00)
	End   int `bson:"end" json:"end"`
}

// DayAvailability describes one day's working hours.
type DayAvailability struct {
	IsOpen bool            `bson:"isOpen" json:"isOpen"`
	Open   int             `bson:"open" json:"open"`   // minutes from midnight
	Close  int             `bson:"close" json:"close"` // minutes from midnight
	Breaks []BreakInterval `bson:"breaks,omitempty" json:"breaks,omitempty"`
}

// WeekSchedule is a business's recurring weekly template. It is a fixed-size
// array indexed by time.Weekday (Sunday = 0) so all seven days are always
// present.
type WeekSchedule [7]DayAvailability

// BusinessAvailability is a business's full availability configuration:
// the weekly template, date-keyed overrides replacing a day's template
// entirely (holidays etc.), and the business-local timezone.
type BusinessAvailability struct {
	BusinessID string                     `bson:"businessId" json:"businessId"`
	Week       WeekSchedule               `bson:"week" json:"week"`
	Overrides  map[string]DayAvailability `bson:"overrides,omitempty" json:"overrides,omitempty"` // keyed "2006-01-02" in business-local time
	Timezone   string                     `bson:"timezone" json:"timezone"`
	UpdatedAt  time.Time                  `bson:"updatedAt" json:"updatedAt"`
}

// Location resolves the business's timezone, falling back to UTC.
func (a BusinessAvailability) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GlobalConstraints holds per-business scheduling policy. Zero values fall
// back to the engine-wide defaults from configuration.
type GlobalConstraints struct {
	BusinessID      string    `bson:"businessId" json:"businessId"`
	MaxHoursPerDay  int       `bson:"maxHoursPerDay" json:"maxHoursPerDay"`
	MaxHoursPerWeek int       `bson:"maxHoursPerWeek" json:"maxHoursPerWeek"`
	DurationMin     int       `bson:"appointmentDurationMin" json:"appointmentDurationMin"` // default slot length
	BufferMin       int       `bson:"bufferMin" json:"bufferMin"`                           // mandatory gap after every appointment
	LeadTimeMin     int       `bson:"leadTimeMin" json:"leadTimeMin"`                       // no booking inside this window from now
	CancelWindowMin int       `bson:"cancellationWindowMin" json:"cancellationWindowMin"`   // minimum customer cancellation notice
	AutoConfirm     bool      `bson:"autoConfirm" json:"autoConfirm"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidationError reports one invalid field of a submitted schedule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DefaultWeekSchedule returns the seed template: open Monday through
// Saturday 09:00-17:00, closed Sunday.
func DefaultWeekSchedule() WeekSchedule {
	var week WeekSchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		week[d] = DayAvailability{
			IsOpen: d != time.Sunday,
			Open:   9 * 60,
			Close:  17 * 60,
		}
	}
	return week
}
