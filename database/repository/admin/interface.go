// File: database/repository/admin/interface.go
package adminRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"solecare/config"
	"solecare/database"
	"solecare/models"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type mongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo constructs a new MongoDB AdminRepository.
func NewMongoAdminRepo() AdminRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAdminRepo{
		coll: db.Collection("admins"),
	}
}
