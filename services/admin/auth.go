package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminRepo "solecare/database/repository/admin"
	orderRepo "solecare/database/repository/order"
	"solecare/utils"
)

const tokenTTL = 12 * time.Hour

// DefaultAdminService is the production AdminService.
type DefaultAdminService struct {
	Repo   adminRepo.AdminRepository
	Orders orderRepo.OrderRepository
}

// Authenticate verifies credentials against the admins collection, issues a
// JWT carrying the role claim, and records an auth session so the token can
// be revoked before it expires.
func (s *DefaultAdminService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Warn("admin login: lookup failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, rec.Email, rec.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	session := utils.AuthSession{
		AdminID:   rec.ID,
		Email:     rec.Email,
		Role:      rec.Role,
		CreatedAt: time.Now(),
	}
	if err := utils.SaveAuthSession(utils.GetAuthCacheClient(), utils.HashToken(token), session); err != nil {
		return nil, fmt.Errorf("failed to create auth session: %w", err)
	}

	utils.GetLogger().Info("admin logged in", zap.String("adminID", rec.ID))
	return &AuthResponse{Token: token, Admin: *rec}, nil
}

// Logout invalidates the session behind the presented token.
func (s *DefaultAdminService) Logout(ctx context.Context, token string) error {
	return utils.DeleteAuthSession(utils.GetAuthCacheClient(), utils.HashToken(token))
}
