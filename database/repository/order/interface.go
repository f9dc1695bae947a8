// File: database/repository/order/interface.go
package orderRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"solecare/config"
	"solecare/database"
	"solecare/models"
)

// ListFilter narrows and orders the admin order listing.
type ListFilter struct {
	Status   string // empty means any status
	SortDesc bool   // sort by created_at, newest first when true
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo constructs a new MongoDB OrderRepository.
func NewMongoOrderRepo() OrderRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoOrderRepo{
		coll: db.Collection("orders"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create order indexes: %v\n", err)
	}
	return repo
}
