package service

import (
	"context"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/menu-svc/internal/storage"
	"tiemnuoc/pkg/sheets"
)

// MenuSource is the backend the raw menu rows come from.
type MenuSource interface {
	GetMenu(ctx context.Context) ([]map[string]interface{}, error)
}

type MenuRepository interface {
	LoadMenu(ctx context.Context) ([]domain.MenuItem, bool, error)
	SaveMenu(ctx context.Context, items []domain.MenuItem) error
	LoadFavorites(ctx context.Context, session string) ([]string, error)
	SaveFavorites(ctx context.Context, session string, ids []string) error
}

type MenuServiceInterface interface {
	Refresh(ctx context.Context) ([]domain.MenuItem, error)
	Browse(ctx context.Context, session string, query domain.BrowseQuery) (*domain.MenuPage, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Favorites(ctx context.Context, session string) ([]string, error)
	ToggleFavorite(ctx context.Context, session, id string) ([]string, error)
	Options() domain.Options
}

var (
	_ MenuSource           = (*sheets.Client)(nil)
	_ MenuRepository       = (*storage.KVRepository)(nil)
	_ MenuServiceInterface = (*MenuService)(nil)
	_ QRGenerator          = TableQRGenerator{}
)
