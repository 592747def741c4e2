package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/rueidis"

	"webond/internal/domain/entity"
	"webond/pkg/logger"
)

// RecommendationCache keeps per-user task recommendations in Redis so
// repeated feed loads skip the matching pass. Misses and Redis outages
// are soft failures; callers recompute.
type RecommendationCache struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client rueidis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RecommendationCache) key(userID string) string {
	return "recommendations:" + userID
}

// Get returns the cached recommendations for the user, or (nil, false)
// on a miss or error.
func (c *RecommendationCache) Get(ctx context.Context, userID string) ([]*entity.Task, bool) {
	cmd := c.client.B().Get().Key(c.key(userID)).Build()
	raw, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			logger.Warn("recommendation cache read failed for %s: %v", userID, err)
		}
		return nil, false
	}

	var tasks []*entity.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		logger.Warn("recommendation cache entry corrupt for %s: %v", userID, err)
		return nil, false
	}

	return tasks, true
}

// Set stores the recommendations with the configured TTL. Best effort.
func (c *RecommendationCache) Set(ctx context.Context, userID string, tasks []*entity.Task) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return
	}

	cmd := c.client.B().Set().Key(c.key(userID)).Value(string(raw)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		logger.Warn("recommendation cache write failed for %s: %v", userID, err)
	}
}
