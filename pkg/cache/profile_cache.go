package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-journaling-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix  = "profile:"
	DefaultProfileTTL = time.Hour
)

// ProfileCache stores rendered user profiles in Redis. A miss returns
// (nil, nil).
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func profileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}

func (c *ProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	raw, err := c.rdb.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var profile entity.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &profile, nil
}

func (c *ProfileCache) Set(ctx context.Context, profile *entity.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, profileKey(profile.UserId), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

func (c *ProfileCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, profileKey(userID)).Err()
}
