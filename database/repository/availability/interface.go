// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"solecare/config"
	"solecare/database"
	"solecare/models"
)

type AvailabilityRepository interface {
	GetAllDays(ctx context.Context) ([]models.AvailabilityDay, error)
	GetTimes(ctx context.Context, date string) ([]string, error)
	SetDay(ctx context.Context, date string, times []string) error
	AddSlot(ctx context.Context, date, time string) error
	RemoveSlot(ctx context.Context, date, time string) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAvailabilityRepo{
		coll: db.Collection("availability"),
	}
}
