package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/menu-svc/internal/mocks"
	"tiemnuoc/menu-svc/internal/service"
	"tiemnuoc/menu-svc/internal/storage"
	"tiemnuoc/pkg/kvstore"
	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rawMenu() []map[string]interface{} {
	return []map[string]interface{}{
		{"Ma_Mon": "M01", "Ten_Mon": "Trà Đào Nóng", "Gia_Ban": 20000, "Danh_Muc": "Trà"},
		{"Ma_Mon": "M02", "Ten_Mon": "Trà Đào Đá", "Gia_Ban": 22000, "Danh_Muc": "Trà"},
		{"Ma_Mon": "M03", "Ten_Mon": "Bạc Xỉu", "Gia_Ban": 25000, "Danh_Muc": "Cà phê"},
		{"Ma_Mon": "M04", "Ten_Mon": "Ăn vặt", "Gia_Ban": 15000, "Danh_Muc": "Bánh", "Co_San": "FALSE"},
	}
}

func TestMenuService_Refresh(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMocks  func(*mocks.MenuSource, *mocks.MenuRepository)
		expectedItems int
		expectedError error
	}{
		{
			name: "success",
			prepareMocks: func(source *mocks.MenuSource, repo *mocks.MenuRepository) {
				source.On("GetMenu", ctx).Return(rawMenu(), nil).Once()
				repo.On("SaveMenu", ctx, mock.AnythingOfType("[]domain.MenuItem")).Return(nil).Once()
			},
			expectedItems: 3,
		},
		{
			name: "cache write failure is not fatal",
			prepareMocks: func(source *mocks.MenuSource, repo *mocks.MenuRepository) {
				source.On("GetMenu", ctx).Return(rawMenu(), nil).Once()
				repo.On("SaveMenu", ctx, mock.Anything).Return(errors.New("disk full")).Once()
			},
			expectedItems: 3,
		},
		{
			name: "backend unavailable",
			prepareMocks: func(source *mocks.MenuSource, repo *mocks.MenuRepository) {
				source.On("GetMenu", ctx).Return(nil, sheets.ErrUnavailable).Once()
			},
			expectedError: sheets.ErrUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			source := mocks.NewMenuSource(t)
			repo := mocks.NewMenuRepository(t)
			testCase.prepareMocks(source, repo)

			svc := service.NewMenuService(source, repo)
			items, err := svc.Refresh(ctx)

			assert.ErrorIs(t, err, testCase.expectedError)
			assert.Len(t, items, testCase.expectedItems)
		})
	}
}

func TestMenuService_FallsBackToCache(t *testing.T) {
	ctx := context.Background()
	source := mocks.NewMenuSource(t)
	repo := mocks.NewMenuRepository(t)

	cached := []domain.MenuItem{{ID: "M03", Name: "Bạc Xỉu", Price: 25000, Category: "Cà phê",
		Variants: map[domain.VariantTag]domain.Variant{domain.VariantDefault: {ID: "M03", Price: 25000}}}}

	repo.On("LoadMenu", ctx).Return(cached, true, nil).Once()
	source.On("GetMenu", ctx).Return(nil, sheets.ErrUnavailable).Once()
	repo.On("LoadFavorites", ctx, "s1").Return([]string{}, nil).Once()

	svc := service.NewMenuService(source, repo)
	page, err := svc.Browse(ctx, "s1", domain.BrowseQuery{})

	require.NoError(t, err)
	assert.True(t, page.Stale)
	assert.Equal(t, cached, page.Items)
}

func TestMenuService_NoMenuAnywhere(t *testing.T) {
	ctx := context.Background()
	source := mocks.NewMenuSource(t)
	repo := mocks.NewMenuRepository(t)

	repo.On("LoadMenu", ctx).Return(nil, false, nil).Once()
	source.On("GetMenu", ctx).Return(nil, sheets.ErrMalformedResponse).Once()

	_, err := service.NewMenuService(source, repo).Browse(ctx, "s1", domain.BrowseQuery{})
	assert.ErrorIs(t, err, sheets.ErrMalformedResponse)
}

func newLoadedService(t *testing.T) (*service.MenuService, kvstore.Store) {
	t.Helper()
	ctx := context.Background()
	source := mocks.NewMenuSource(t)
	source.On("GetMenu", ctx).Return(rawMenu(), nil).Once()

	store := kvstore.NewMemoryStore()
	svc := service.NewMenuService(source, storage.NewKVRepository(store))
	_, err := svc.Refresh(ctx)
	require.NoError(t, err)
	return svc, store
}

func names(items []domain.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestMenuService_Browse(t *testing.T) {
	svc, _ := newLoadedService(t)
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, "s1", "M03")
	require.NoError(t, err)

	tests := []struct {
		name     string
		session  string
		query    domain.BrowseQuery
		expected []string
	}{
		{name: "all", session: "s1", query: domain.BrowseQuery{}, expected: []string{"Trà Đào", "Bạc Xỉu", "Ăn vặt"}},
		{name: "category", session: "s1", query: domain.BrowseQuery{Category: "Trà"}, expected: []string{"Trà Đào"}},
		{name: "favorites", session: "s1", query: domain.BrowseQuery{Category: domain.CategoryFavorites}, expected: []string{"Bạc Xỉu"}},
		{name: "favorites of another session", session: "s2", query: domain.BrowseQuery{Category: domain.CategoryFavorites}, expected: []string{}},
		{name: "search ignores accents and category", session: "s1", query: domain.BrowseQuery{Search: "bac xiu", Category: "Trà"}, expected: []string{"Bạc Xỉu"}},
		{name: "price ascending", session: "s1", query: domain.BrowseQuery{Sort: domain.SortPriceAsc}, expected: []string{"Ăn vặt", "Trà Đào", "Bạc Xỉu"}},
		{name: "price descending", session: "s1", query: domain.BrowseQuery{Sort: domain.SortPriceDesc}, expected: []string{"Bạc Xỉu", "Trà Đào", "Ăn vặt"}},
		{name: "name", session: "s1", query: domain.BrowseQuery{Sort: domain.SortNameAsc}, expected: []string{"Ăn vặt", "Bạc Xỉu", "Trà Đào"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			page, err := svc.Browse(ctx, testCase.session, testCase.query)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, names(page.Items))
		})
	}
}

func TestMenuService_BrowseCategories(t *testing.T) {
	svc, _ := newLoadedService(t)
	ctx := context.Background()

	page, err := svc.Browse(ctx, "s1", domain.BrowseQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryAll, "Trà", "Cà phê", "Bánh"}, page.Categories)

	_, err = svc.ToggleFavorite(ctx, "s1", "M01")
	require.NoError(t, err)

	page, err = svc.Browse(ctx, "s1", domain.BrowseQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryAll, domain.CategoryFavorites, "Trà", "Cà phê", "Bánh"}, page.Categories)
	assert.True(t, page.Items[0].IsFavorite, "a variant id marks the whole drink")
	assert.True(t, page.Items[2].IsOutOfStock)
}

func TestMenuService_ToggleFavorite(t *testing.T) {
	svc, store := newLoadedService(t)
	ctx := context.Background()

	ids, err := svc.ToggleFavorite(ctx, "s1", "M03")
	require.NoError(t, err)
	assert.Equal(t, []string{"M03"}, ids)

	ids, err = svc.ToggleFavorite(ctx, "s1", "M02")
	require.NoError(t, err)
	assert.Equal(t, []string{"M03", "M02"}, ids)

	ids, err = svc.ToggleFavorite(ctx, "s1", "M03")
	require.NoError(t, err)
	assert.Equal(t, []string{"M02"}, ids)

	var persisted []string
	found, err := store.Get(ctx, "session:s1:favorites", &persisted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"M02"}, persisted)
}

func TestMenuService_Get(t *testing.T) {
	svc, _ := newLoadedService(t)
	ctx := context.Background()

	item, err := svc.Get(ctx, "M01")
	require.NoError(t, err)
	assert.Equal(t, "Trà Đào", item.Name)
	assert.Equal(t, shop.VND(22000), item.Price)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestMenuService_PersistsCache(t *testing.T) {
	_, store := newLoadedService(t)

	var cached []domain.MenuItem
	found, err := store.Get(context.Background(), "menu_items", &cached)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, cached, 3)
}

func TestMenuService_Options(t *testing.T) {
	opts := service.NewMenuService(nil, nil).Options()
	assert.Len(t, opts.Sizes, 3)
	assert.Len(t, opts.Toppings, 3)
	assert.Contains(t, opts.Temperatures, shop.TemperatureIced)
}

func TestTableQRGenerator(t *testing.T) {
	gen := service.TableQRGenerator{BaseURL: "https://tiemnuoc.vn/"}

	assert.Equal(t, "https://tiemnuoc.vn/?table=B+2", gen.Link("B 2"))

	png, err := gen.Generate("5")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = gen.Generate("  ")
	assert.ErrorIs(t, err, service.ErrInvalidTable)
}

func TestMenuService_AutoRefreshNonPositiveInterval(t *testing.T) {
	source := mocks.NewMenuSource(t)
	repo := mocks.NewMenuRepository(t)
	svc := service.NewMenuService(source, repo)

	ctx, cancel := context.WithCancel(context.Background())
	svc.StartAutoRefresh(ctx, 0)
	svc.StartAutoRefresh(ctx, -time.Second)
	time.Sleep(20 * time.Millisecond)
	cancel()

	source.AssertNotCalled(t, "GetMenu", mock.Anything)
}
