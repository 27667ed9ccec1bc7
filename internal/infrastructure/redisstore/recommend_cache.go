package redisstore

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/tmdb"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

// RecommendCache memoizes upstream search results per normalized title.
// Cache misses and redis errors both fall through to the wrapped recommender.
type RecommendCache struct {
	next application.Recommender
	rdb  *redis.Client
	ttl  time.Duration
}

func NewRecommendCache(next application.Recommender, rdb *redis.Client, ttl time.Duration) *RecommendCache {
	return &RecommendCache{next: next, rdb: rdb, ttl: ttl}
}

func recommendKey(title string) string {
	return "tmdb:search:" + strings.ToLower(strings.TrimSpace(title))
}

func (c *RecommendCache) Search(ctx context.Context, title string) ([]tmdb.Recommendation, error) {
	key := recommendKey(title)

	var cached []tmdb.Recommendation
	if ok, err := helpers.RedisGetJSON(ctx, c.rdb, key, &cached); err == nil && ok {
		return cached, nil
	}

	recs, err := c.next.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	_ = helpers.RedisSetJSON(ctx, c.rdb, key, recs, c.ttl)
	return recs, nil
}

var _ application.Recommender = (*RecommendCache)(nil)
