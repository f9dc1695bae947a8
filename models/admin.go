package models

import "time"

// Admin roles.
const (
	RoleAdmin = "admin"
)

// Admin is a back-office user able to manage orders and availability.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
