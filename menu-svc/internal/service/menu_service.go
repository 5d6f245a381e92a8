package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/pkg/shop"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrItemNotFound = errors.New("menu item not found")

const DefaultRefreshInterval = 30 * time.Second

type MenuService struct {
	source MenuSource
	repo   MenuRepository

	mu     sync.Mutex
	items  []domain.MenuItem
	loaded bool
	stale  bool
}

func NewMenuService(source MenuSource, repo MenuRepository) *MenuService {
	return &MenuService{source: source, repo: repo}
}

// Refresh fetches the menu and replaces the cached one wholesale. On failure
// the previous menu stays in place and is reported as stale.
func (s *MenuService) Refresh(ctx context.Context) ([]domain.MenuItem, error) {
	raw, err := s.source.GetMenu(ctx)
	if err != nil {
		s.mu.Lock()
		s.stale = true
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}

	rows := make([]domain.MenuRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, ResolveRow(r))
	}
	items := Normalize(rows)

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.stale = false
	s.mu.Unlock()

	if err := s.repo.SaveMenu(ctx, items); err != nil {
		log.Warn().Err(err).Msg("failed to persist menu cache")
	}

	log.Debug().Int("rows", len(raw)).Int("items", len(items)).Msg("menu refreshed")
	return items, nil
}

// StartAutoRefresh refreshes the menu every interval until ctx is done. A tick
// never overlaps the previous refresh.
func (s *MenuService) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil {
					log.Warn().Err(err).Msg("background menu refresh failed")
				}
			}
		}
	}()
}

// current returns the in-memory menu, falling back to the persisted cache and
// finally to a live fetch.
func (s *MenuService) current(ctx context.Context) ([]domain.MenuItem, bool, error) {
	s.mu.Lock()
	if s.loaded {
		items, stale := s.items, s.stale
		s.mu.Unlock()
		return items, stale, nil
	}
	s.mu.Unlock()

	cached, found, err := s.repo.LoadMenu(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read menu cache")
	}

	items, err := s.Refresh(ctx)
	if err == nil {
		return items, false, nil
	}
	if found {
		s.mu.Lock()
		if !s.loaded {
			s.items = cached
			s.loaded = true
		}
		items = s.items
		s.mu.Unlock()
		return items, true, nil
	}
	return nil, true, err
}

func (s *MenuService) Browse(ctx context.Context, session string, query domain.BrowseQuery) (*domain.MenuPage, error) {
	items, stale, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	favorites, err := s.repo.LoadFavorites(ctx, session)
	if err != nil {
		return nil, err
	}

	page := &domain.MenuPage{
		Items:      filterItems(items, favorites, query),
		Categories: categories(items, favorites),
		Stale:      stale,
	}
	sortItems(page.Items, query.Sort)
	return page, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	items, _, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.HasID(id) {
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *MenuService) Favorites(ctx context.Context, session string) ([]string, error) {
	return s.repo.LoadFavorites(ctx, session)
}

func (s *MenuService) ToggleFavorite(ctx context.Context, session, id string) ([]string, error) {
	favorites, err := s.repo.LoadFavorites(ctx, session)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(favorites)+1)
	removed := false
	for _, f := range favorites {
		if f == id {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, id)
	}

	if err := s.repo.SaveFavorites(ctx, session, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *MenuService) Options() domain.Options {
	return domain.Options{
		Sizes:        shop.Sizes,
		Toppings:     shop.Toppings,
		Temperatures: shop.Temperatures,
		SugarLevels:  shop.SugarLevels,
		IceLevels:    shop.IceLevels,
	}
}

func isFavorite(item domain.MenuItem, favorites []string) bool {
	for _, f := range favorites {
		if item.HasID(f) {
			return true
		}
	}
	return false
}

// filterItems applies search first; a search ignores the category.
func filterItems(items []domain.MenuItem, favorites []string, query domain.BrowseQuery) []domain.MenuItem {
	search := foldKey(query.Search)
	out := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		item.IsFavorite = isFavorite(item, favorites)
		switch {
		case search != "":
			if !strings.Contains(foldKey(item.Name), search) {
				continue
			}
		case query.Category == domain.CategoryFavorites:
			if !item.IsFavorite {
				continue
			}
		case query.Category != "" && query.Category != domain.CategoryAll:
			if item.Category != query.Category {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func categories(items []domain.MenuItem, favorites []string) []string {
	out := []string{domain.CategoryAll}
	if len(favorites) > 0 {
		out = append(out, domain.CategoryFavorites)
	}
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

func sortItems(items []domain.MenuItem, by string) {
	switch by {
	case domain.SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case domain.SortNameAsc:
		c := collate.New(language.Vietnamese)
		sort.SliceStable(items, func(i, j int) bool { return c.CompareString(items[i].Name, items[j].Name) < 0 })
	}
}
