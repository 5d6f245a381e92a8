package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favorites struct {
	IDs []string `json:"ids"`
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	var got favorites
	found, err := store.Get(ctx, "favorites", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "favorites", favorites{IDs: []string{"M1", "M2"}}))

	found, err = store.Get(ctx, "favorites", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"M1", "M2"}, got.IDs)

	require.NoError(t, store.Delete(ctx, "favorites"))
	found, err = store.Get(ctx, "favorites", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Corrupt(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart", "not a list"))

	var lines []string
	found, err := store.Get(ctx, "cart", &lines)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestNamespaced(t *testing.T) {
	base := NewMemoryStore()
	exerciseStore(t, WithPrefix(base, "session:abc"))

	ctx := context.Background()
	ns := WithPrefix(base, "session:abc")
	require.NoError(t, ns.Set(ctx, "cart", []int{1}))

	var raw []int
	found, err := base.Get(ctx, "session:abc:cart", &raw)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1}, raw)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, 0))
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, time.Hour)
	require.NoError(t, store.Set(context.Background(), "menu_items", []string{"a"}))
	assert.Equal(t, time.Hour, mr.TTL("menu_items"))
}

func TestPostgresStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, store.EnsureSchema(ctx))

	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("favorites").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	var got favorites
	found, err := store.Get(ctx, "favorites", &got)
	require.NoError(t, err)
	assert.False(t, found)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("favorites", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Set(ctx, "favorites", favorites{IDs: []string{"M1"}}))

	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("favorites").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"ids":["M1"]}`)))
	found, err = store.Get(ctx, "favorites", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"M1"}, got.IDs)

	mock.ExpectExec("DELETE FROM kv_store").
		WithArgs("favorites").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(ctx, "favorites"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("cart").
		WillReturnError(errors.New("connection reset"))

	var lines []string
	_, err = NewPostgresStore(db).Get(context.Background(), "cart", &lines)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorrupt)
}
