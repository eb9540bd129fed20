package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"bookable/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) ListBetween(ctx context.Context, businessID string, from, to time.Time, includeCancelled bool) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Half-open interval overlap: start < to && end > from.
	filter := bson.M{
		"businessId": businessID,
		"start":      bson.M{"$lt": to},
		"end":        bson.M{"$gt": from},
	}
	if !includeCancelled {
		filter["status"] = bson.M{"$ne": models.StatusCancelled}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments for business %s: %w", businessID, err)
	}
	return appts, nil
}
