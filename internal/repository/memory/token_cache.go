package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"ai-journaling-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// TokenCache remembers verified bearer tokens so repeated requests skip the
// auth provider round trip. Keys are token digests.
type TokenCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewTokenCache(ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TokenCache{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Save caches user for token until the earlier of the cache TTL and expiresAt.
// Tokens already expired are not cached.
func (c *TokenCache) Save(token string, user *entity.AuthUser, expiresAt time.Time) {
	ttl := c.ttl
	if !expiresAt.IsZero() {
		remaining := time.Until(expiresAt)
		if remaining <= 0 {
			return
		}
		if remaining < ttl {
			ttl = remaining
		}
	}
	c.cache.Set(tokenKey(token), user, ttl)
}

func (c *TokenCache) Get(token string) (*entity.AuthUser, bool) {
	if x, found := c.cache.Get(tokenKey(token)); found {
		return x.(*entity.AuthUser), true
	}
	return nil, false
}

func (c *TokenCache) Delete(token string) {
	c.cache.Delete(tokenKey(token))
}
