package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	model "listing-feed/internal/models"
	"listing-feed/utils"
)

const listingKeyPattern = "listing:*"

// RedisStore reads listing JSON published to Redis by the marketplace backend.
// It is a hydration source only: the feed engine itself stays in-memory.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(host, port, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: rdb}, nil
}

// LoadListings scans the listing keyspace and decodes each entry. Entries that
// fail to decode are skipped with a warning; one bad record never blocks the
// rest of the hydration.
func (s *RedisStore) LoadListings(ctx context.Context) ([]model.Listing, error) {
	var (
		listings []model.Listing
		cursor   uint64
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, listingKeyPattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan listings: %w", err)
		}

		for _, key := range keys {
			raw, err := s.client.Get(ctx, key).Result()
			if err != nil {
				utils.Warn("redis: failed to read listing", map[string]any{"key": key, "error": err.Error()})
				continue
			}

			var l model.Listing
			if err := json.Unmarshal([]byte(raw), &l); err != nil {
				utils.Warn("redis: failed to decode listing", map[string]any{"key": key, "error": err.Error()})
				continue
			}
			if l.ID == "" {
				utils.Warn("redis: listing missing id, skipped", map[string]any{"key": key})
				continue
			}
			listings = append(listings, l)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return listings, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
