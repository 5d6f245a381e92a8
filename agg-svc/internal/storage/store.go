package storage

import (
	"context"
	"time"

	"tiemnuoc/pkg/shop"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RecordOrder adds the cups to the day's leaderboard and the all-time one.
func (s *Store) RecordOrder(ctx context.Context, day time.Time, cups map[string]int) error {
	if len(cups) == 0 {
		return nil
	}
	dailyKey := shop.PopularityDailyKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, n := range cups {
			pipe.ZIncrBy(ctx, dailyKey, float64(n), name)
			pipe.ZIncrBy(ctx, shop.PopularityAllTimeKey, float64(n), name)
		}
		pipe.Expire(ctx, dailyKey, shop.PopularityDailyTTL)
		return nil
	})
	return err
}

// RevertOrder takes a cancelled order's cups back off its day. The all-time
// board keeps them.
func (s *Store) RevertOrder(ctx context.Context, day time.Time, cups map[string]int) error {
	if len(cups) == 0 {
		return nil
	}
	dailyKey := shop.PopularityDailyKey(day)
	exists, err := s.rdb.Exists(ctx, dailyKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		// expired or never recorded
		return nil
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, n := range cups {
			pipe.ZIncrBy(ctx, dailyKey, -float64(n), name)
		}
		pipe.ZRemRangeByScore(ctx, dailyKey, "-inf", "0")
		return nil
	})
	return err
}
