package models

import "time"

// SlotCandidate is an ephemeral bookable interval produced by the slot
// generator. It is never persisted.
type SlotCandidate struct {
	Start     time.Time `json:"start"` // UTC instant
	End       time.Time `json:"end"`   // UTC instant
	Available bool      `json:"available"`
}

// DateRange bounds a slot or appointment query, half-open [From, To).
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Valid reports whether the range is non-empty.
func (r DateRange) Valid() bool {
	return r.To.After(r.From)
}
