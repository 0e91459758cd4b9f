package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmapay/admin-api/internal/core/domain"
)

const roleCacheTTL = 5 * time.Minute

// RoleCache caches the authoritative role per profile id so session
// validation can skip the identity store on the hot path.
// Key format: role:<profile_id>
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

// Get returns the cached role for profileID. The second return value is false
// on a miss; a cached value that no longer parses as a role is treated as a
// miss as well.
func (c *RoleCache) Get(ctx context.Context, profileID string) (domain.Role, bool, error) {
	val, err := c.client.Get(ctx, c.key(profileID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("role cache get: %w", err)
	}

	role, parseErr := domain.ParseRole(val)
	if parseErr != nil {
		return "", false, nil
	}
	return role, true, nil
}

// Set records the role for profileID (expires after roleCacheTTL).
func (c *RoleCache) Set(ctx context.Context, profileID string, role domain.Role) error {
	return c.client.Set(ctx, c.key(profileID), string(role), roleCacheTTL).Err()
}

// Invalidate drops the cached role, forcing the next lookup to hit the store.
// Provisioning calls this after every write so role changes are never served
// stale past the write.
func (c *RoleCache) Invalidate(ctx context.Context, profileID string) error {
	return c.client.Del(ctx, c.key(profileID)).Err()
}

func (c *RoleCache) key(profileID string) string {
	return fmt.Sprintf("role:%s", profileID)
}
