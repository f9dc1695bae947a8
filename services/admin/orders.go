package admin

import (
	"context"
	"fmt"
	"sort"
	"time"

	adminRepo "solecare/database/repository/admin"
	orderRepo "solecare/database/repository/order"
	"solecare/models"
)

func (s *DefaultAdminService) ListOrders(ctx context.Context, filter orderRepo.ListFilter) ([]models.Order, error) {
	if filter.Status != "" && !models.ValidOrderStatus(filter.Status) {
		return nil, fmt.Errorf("unknown order status %q", filter.Status)
	}
	return s.Orders.List(ctx, filter)
}

func (s *DefaultAdminService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.Orders.UpdateStatus(ctx, orderID, status)
}

// Revenue aggregates non-cancelled orders into per-month totals, oldest
// month first.
func (s *DefaultAdminService) Revenue(ctx context.Context) ([]RevenueBucket, error) {
	orders, err := s.Orders.List(ctx, orderRepo.ListFilter{})
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*RevenueBucket)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		month := o.CreatedAt.Format("2006-01")
		b, ok := byMonth[month]
		if !ok {
			b = &RevenueBucket{Month: month}
			byMonth[month] = b
		}
		b.Orders++
		b.Total += o.TotalCost
	}

	buckets := make([]RevenueBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })
	return buckets, nil
}

// SeedAdmin creates the first back-office account if the email is not taken.
// Used by deployment tooling, never by request handlers.
func SeedAdmin(ctx context.Context, repo adminRepo.AdminRepository, email, name, passwordHash string) error {
	if existing, err := repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil
	}
	return repo.Create(ctx, &models.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	})
}
