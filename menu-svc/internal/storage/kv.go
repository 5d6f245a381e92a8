package storage

import (
	"context"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/pkg/kvstore"
)

const (
	menuKey      = "menu_items"
	favoritesKey = "favorites"
)

// KVRepository keeps the menu cache globally and favorites per session.
type KVRepository struct {
	Store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{Store: store}
}

func (r *KVRepository) LoadMenu(ctx context.Context) ([]domain.MenuItem, bool, error) {
	var items []domain.MenuItem
	found, err := r.Store.Get(ctx, menuKey, &items)
	if err != nil || !found {
		return nil, false, err
	}
	return items, true, nil
}

func (r *KVRepository) SaveMenu(ctx context.Context, items []domain.MenuItem) error {
	return r.Store.Set(ctx, menuKey, items)
}

func (r *KVRepository) LoadFavorites(ctx context.Context, session string) ([]string, error) {
	ids := []string{}
	if _, err := kvstore.WithPrefix(r.Store, "session:"+session).Get(ctx, favoritesKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *KVRepository) SaveFavorites(ctx context.Context, session string, ids []string) error {
	return kvstore.WithPrefix(r.Store, "session:"+session).Set(ctx, favoritesKey, ids)
}
