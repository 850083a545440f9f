package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodrescue/backend/internal/models"
)

// ListingTTL bounds staleness of cached rescue listings. Mutations
// invalidate eagerly, so the TTL only covers writers outside this
// process.
const ListingTTL = time.Minute

const (
	allRescuesKey  = "rescues:all"
	ownerKeyPrefix = "rescues:owner:"
)

// ListingCache is a cache-aside layer over Redis for the two rescue
// listing queries. Misses and Redis errors both report !ok; callers
// fall through to the document store.
type ListingCache struct {
	rdb *redis.Client
}

func NewListingCache(rdb *redis.Client) *ListingCache {
	return &ListingCache{rdb: rdb}
}

// GetAll returns the cached full listing, if present.
func (c *ListingCache) GetAll(ctx context.Context) ([]models.Rescue, bool) {
	return c.get(ctx, allRescuesKey)
}

// SetAll caches the full listing.
func (c *ListingCache) SetAll(ctx context.Context, rescues []models.Rescue) {
	c.set(ctx, allRescuesKey, rescues)
}

// GetOwner returns the cached per-owner listing, if present.
func (c *ListingCache) GetOwner(ctx context.Context, email string) ([]models.Rescue, bool) {
	return c.get(ctx, ownerKeyPrefix+email)
}

// SetOwner caches the per-owner listing.
func (c *ListingCache) SetOwner(ctx context.Context, email string, rescues []models.Rescue) {
	c.set(ctx, ownerKeyPrefix+email, rescues)
}

// Invalidate drops the full listing and the owner's listing after any
// rescue mutation.
func (c *ListingCache) Invalidate(ctx context.Context, ownerEmail string) {
	keys := []string{allRescuesKey}
	if ownerEmail != "" {
		keys = append(keys, ownerKeyPrefix+ownerEmail)
	}
	c.rdb.Del(ctx, keys...)
}

func (c *ListingCache) get(ctx context.Context, key string) ([]models.Rescue, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var rescues []models.Rescue
	if err := json.Unmarshal(raw, &rescues); err != nil {
		return nil, false
	}
	return rescues, true
}

func (c *ListingCache) set(ctx context.Context, key string, rescues []models.Rescue) {
	raw, err := json.Marshal(rescues)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, ListingTTL)
}
