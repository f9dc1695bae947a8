// File: solecare/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSessionTTL bounds the lifetime of an admin session; a token outliving
// its session is rejected even if the JWT itself has not expired.
const AuthSessionTTL = 12 * time.Hour

// AuthSession represents an authenticated admin identity. It is issued at
// login and invalidated at logout or expiry.
type AuthSession struct {
	AdminID       string    `json:"adminId"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SaveAuthSession saves the auth session in Redis with a TTL.
func SaveAuthSession(client *redis.Client, sessionID string, session AuthSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthSessionPrefix+sessionID, data, AuthSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the auth session from Redis.
func GetAuthSession(client *redis.Client, sessionID string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes an auth session from Redis.
func DeleteAuthSession(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+sessionID).Err()
}
