package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps per-user overall stats in Redis so the dashboard read
// does not rescan the completion log on every request. Entries are
// invalidated whenever a toggle or habit delete changes the underlying data.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var GlobalStatsCache *StatsCache

// NewStatsCache creates and initializes a new stats cache
func NewStatsCache(redisURL string, ttl time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &StatsCache{client: client, ttl: ttl}, nil
}

// Get retrieves cached overall stats. Returns nil on a cache miss.
func (sc *StatsCache) Get(ctx context.Context, userID string) (*model.OverallStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	key := fmt.Sprintf("stats:%s", userID)

	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats from cache: %v", err)
	}

	var stats model.OverallStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %v", err)
	}

	return &stats, nil
}

// Set caches overall stats for a user
func (sc *StatsCache) Set(ctx context.Context, userID string, stats *model.OverallStats) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if stats == nil {
		return fmt.Errorf("cannot cache nil stats")
	}

	key := fmt.Sprintf("stats:%s", userID)

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}

	if err := sc.client.Set(ctx, key, data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %v", err)
	}

	return nil
}

// Invalidate drops the cached stats after a mutation
func (sc *StatsCache) Invalidate(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	key := fmt.Sprintf("stats:%s", userID)
	if err := sc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %v", err)
	}
	return nil
}

func (sc *StatsCache) IsConnected() bool {
	if sc == nil || sc.client == nil {
		return false
	}
	ctx := context.Background()
	return sc.client.Ping(ctx).Err() == nil
}

// Close closes the Redis connection
func (sc *StatsCache) Close() error {
	return sc.client.Close()
}
