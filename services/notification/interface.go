package notification

import (
	"context"

	"bookable/models"
	"bookable/utils"

	"go.uber.org/zap"
)

// NotificationService is invoked after successful state transitions.
// Delivery mechanics live with the collaborator behind this interface;
// failures must never roll back the transition that triggered them.
type NotificationService interface {
	AppointmentBooked(ctx context.Context, appt models.Appointment) error
	AppointmentConfirmed(ctx context.Context, appt models.Appointment) error
	AppointmentCancelled(ctx context.Context, appt models.Appointment) error
	AppointmentReminder(ctx context.Context, appt models.Appointment) error
}

// LogNotificationService is the default implementation: it records the
// event in the structured log and leaves delivery to external systems
// tailing it.
type LogNotificationService struct{}

func (s *LogNotificationService) AppointmentBooked(ctx context.Context, appt models.Appointment) error {
	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("businessID", appt.BusinessID),
		zap.String("customerID", appt.CustomerID),
		zap.Time("start", appt.Start),
		zap.String("status", string(appt.Status)))
	return nil
}

func (s *LogNotificationService) AppointmentConfirmed(ctx context.Context, appt models.Appointment) error {
	utils.GetLogger().Info("appointment confirmed",
		zap.String("appointmentID", appt.ID),
		zap.String("businessID", appt.BusinessID),
		zap.String("customerID", appt.CustomerID))
	return nil
}

func (s *LogNotificationService) AppointmentCancelled(ctx context.Context, appt models.Appointment) error {
	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentID", appt.ID),
		zap.String("businessID", appt.BusinessID),
		zap.String("cancelledBy", string(appt.CancelledBy)))
	return nil
}

func (s *LogNotificationService) AppointmentReminder(ctx context.Context, appt models.Appointment) error {
	utils.GetLogger().Info("appointment reminder",
		zap.String("appointmentID", appt.ID),
		zap.String("customerID", appt.CustomerID),
		zap.Time("start", appt.Start))
	return nil
}
