package tests

import (
	"context"
	"testing"

	"tiemnuoc/pkg/kvstore"
	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
	"tiemnuoc/staff-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewPopularityStore(rdb)

	daily := shop.PopularityDailyKey(boardNow)
	mr.ZAdd(daily, 4, "Trà Đào")
	mr.ZAdd(daily, 9, "Cà phê sữa")
	mr.ZAdd(daily, 1, "Nước suối")
	mr.ZAdd(daily, 0, "Sinh tố bơ")
	mr.ZAdd(shop.PopularityAllTimeKey, 120, "Trà Đào")

	top, err := store.TopDaily(ctx, boardNow, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.DrinkScore{{Name: "Cà phê sữa", Cups: 9}, {Name: "Trà Đào", Cups: 4}}, top)

	all, err := store.TopDaily(ctx, boardNow, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	allTime, err := store.TopAllTime(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.DrinkScore{{Name: "Trà Đào", Cups: 120}}, allTime)

	empty, err := store.TopDaily(ctx, boardNow.AddDate(0, 0, -1), 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestKVRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := storage.NewKVRepository(kvstore.NewRedisStore(rdb, 0))

	orders, found, err := repo.LoadOrders(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NotNil(t, orders)

	hidden, err := repo.LoadHiddenTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, hidden)

	require.NoError(t, repo.SaveIntakes(ctx, []shop.InventoryIntake{{ID: "NK-000001", MaterialCode: "NL03"}}))
	assert.True(t, mr.Exists("inventory_logs"))
	logs, err := repo.LoadIntakes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NL03", logs[0].MaterialCode)
}
