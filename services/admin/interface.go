package admin

import (
	"context"

	orderRepo "solecare/database/repository/order"
	"solecare/models"
)

// AuthResponse is returned on successful admin login.
type AuthResponse struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

// RevenueBucket is one month of realized revenue.
type RevenueBucket struct {
	Month  string  `json:"month"` // "YYYY-MM"
	Orders int     `json:"orders"`
	Total  float64 `json:"total"`
}

// AdminService is the back-office surface: credential login with role claims,
// order management and revenue projection.
type AdminService interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ListOrders(ctx context.Context, filter orderRepo.ListFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	Revenue(ctx context.Context) ([]RevenueBucket, error)
}
