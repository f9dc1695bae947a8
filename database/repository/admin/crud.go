// File: database/repository/admin/crud.go
package adminRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"solecare/models"
)

func (r *mongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *mongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	admin.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, admin)
	return err
}
