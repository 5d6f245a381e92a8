package storage

import (
	"context"
	"time"

	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// PopularityStore reads the drink counters agg-svc maintains.
type PopularityStore struct {
	rdb *redis.Client
}

func NewPopularityStore(rdb *redis.Client) *PopularityStore {
	return &PopularityStore{rdb: rdb}
}

func (s *PopularityStore) TopDaily(ctx context.Context, day time.Time, limit int) ([]domain.DrinkScore, error) {
	return s.top(ctx, shop.PopularityDailyKey(day), limit)
}

func (s *PopularityStore) TopAllTime(ctx context.Context, limit int) ([]domain.DrinkScore, error) {
	return s.top(ctx, shop.PopularityAllTimeKey, limit)
}

func (s *PopularityStore) top(ctx context.Context, key string, limit int) ([]domain.DrinkScore, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]domain.DrinkScore, 0, len(result))
	for _, z := range result {
		name, _ := z.Member.(string)
		if z.Score <= 0 {
			continue
		}
		scores = append(scores, domain.DrinkScore{Name: name, Cups: z.Score})
	}
	return scores, nil
}
