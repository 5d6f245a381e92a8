package domain

import "tiemnuoc/pkg/shop"

type VariantTag string

const (
	VariantHot     VariantTag = "Hot"
	VariantIced    VariantTag = "Iced"
	VariantDefault VariantTag = "Default"
)

// MenuRow is one backend row after field resolution.
type MenuRow struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Price             shop.VND `json:"price"`
	Category          string   `json:"category"`
	IsOutOfStock      bool     `json:"isOutOfStock"`
	HasCustomizations bool     `json:"hasCustomizations"`
}

type Variant struct {
	ID           string   `json:"id"`
	Price        shop.VND `json:"price"`
	IsOutOfStock bool     `json:"isOutOfStock"`
}

// MenuItem is a display item: all temperature rows of one drink merged together.
type MenuItem struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Price             shop.VND               `json:"price"`
	Category          string                 `json:"category"`
	IsOutOfStock      bool                   `json:"isOutOfStock"`
	HasCustomizations bool                   `json:"hasCustomizations"`
	Variants          map[VariantTag]Variant `json:"variants"`
	IsFavorite        bool                   `json:"isFavorite,omitempty"`
}

// HasID also matches when the id belongs to one of the variants.
func (m MenuItem) HasID(id string) bool {
	if m.ID == id {
		return true
	}
	for _, v := range m.Variants {
		if v.ID == id {
			return true
		}
	}
	return false
}

const (
	CategoryAll       = "Tất cả"
	CategoryFavorites = "Yêu thích"
	CategoryOther     = "Khác"
)

const (
	SortDefault   = "default"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
)

type BrowseQuery struct {
	Search   string
	Category string
	Sort     string
}

type MenuPage struct {
	Items      []MenuItem `json:"items"`
	Categories []string   `json:"categories"`
	Stale      bool       `json:"stale,omitempty"`
}

// Options is the customization catalog a drink can be configured with.
type Options struct {
	Sizes        []shop.Option `json:"sizes"`
	Toppings     []shop.Option `json:"toppings"`
	Temperatures []string      `json:"temperatures"`
	SugarLevels  []string      `json:"sugarLevels"`
	IceLevels    []string      `json:"iceLevels"`
}
