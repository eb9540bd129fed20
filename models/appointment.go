package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActorRole identifies which side of a booking is acting. The identity
// collaborator (auth middleware) supplies it; the engine trusts it.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleBusiness ActorRole = "business"
)

// Actor is the authenticated caller of a scheduling operation.
type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}

// Appointment is a committed booking. Appointments are never deleted;
// cancellation is a status transition so ids stay stable for audit.
type Appointment struct {
	ID         string            `bson:"id" json:"id"`
	BusinessID string            `bson:"businessId" json:"businessId"`
	CustomerID string            `bson:"customerId" json:"customerId"`
	Start      time.Time         `bson:"start" json:"start"` // UTC instant
	End        time.Time         `bson:"end" json:"end"`     // UTC instant, End > Start
	Status     AppointmentStatus `bson:"status" json:"status"`
	Title      string            `bson:"title" json:"title"`
	Notes      string            `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy ActorRole  `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
}

// Active reports whether the appointment still occupies its interval.
func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// ExpiredAt reports whether a confirmed appointment's end has passed. This
// is a read-time classification, not a stored state change.
func (a Appointment) ExpiredAt(now time.Time) bool {
	return a.Status == StatusConfirmed && !a.End.After(now)
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	CustomerID    string `json:"customerId"`
	BusinessID    string `json:"businessId"`
	Title         string `json:"title"`
	StartsAt      string `json:"startsAt"` // RFC3339
}
