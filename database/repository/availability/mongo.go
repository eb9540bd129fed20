package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookable/database"
	"bookable/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAvailabilityRepo struct {
	availability *mongo.Collection
	constraints  *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB-backed Repository.
func NewMongoAvailabilityRepo() Repository {
	db := database.MongoClient.Database("bookable")
	return &mongoAvailabilityRepo{
		availability: db.Collection("availability"),
		constraints:  db.Collection("constraints"),
	}
}

func (r *mongoAvailabilityRepo) GetAvailability(ctx context.Context, businessID string) (*models.BusinessAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var av models.BusinessAvailability
	err := r.availability.FindOne(ctx, bson.M{"businessId": businessID}).Decode(&av)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for business %s: %w", businessID, err)
	}
	return &av, nil
}

func (r *mongoAvailabilityRepo) GetConstraints(ctx context.Context, businessID string) (*models.GlobalConstraints, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var gc models.GlobalConstraints
	err := r.constraints.FindOne(ctx, bson.M{"businessId": businessID}).Decode(&gc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch constraints for business %s: %w", businessID, err)
	}
	return &gc, nil
}

// Save upserts both documents inside a session transaction so a validation
// pass is never committed halfway.
func (r *mongoAvailabilityRepo) Save(ctx context.Context, av models.BusinessAvailability, gc models.GlobalConstraints) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	upsert := options.Replace().SetUpsert(true)
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.availability.ReplaceOne(sessCtx, bson.M{"businessId": av.BusinessID}, av, upsert); err != nil {
			return nil, err
		}
		if _, err := r.constraints.ReplaceOne(sessCtx, bson.M{"businessId": gc.BusinessID}, gc, upsert); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save availability for business %s: %w", av.BusinessID, err)
	}
	return nil
}
