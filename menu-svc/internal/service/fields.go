package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/pkg/shop"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const UnnamedItem = "Món chưa đặt tên"

// Column aliases, compared against folded keys (see foldKey). The sheet has been
// edited by hand over time so headers drift between spellings.
var (
	idAliases             = []string{"ma_mon", "ma mon", "id", "code"}
	nameAliases           = []string{"ten_mon", "ten mon", "name", "ten"}
	priceAliases          = []string{"gia_ban", "gia ban", "gia", "price"}
	stockAliases          = []string{"co_san", "co san", "con hang", "stock", "available"}
	outOfStockAliases     = []string{"isoutofstock", "outofstock", "out of stock", "out_of_stock", "het hang", "het_hang"}
	categoryAliases       = []string{"danh muc", "danh_muc", "loai", "loai mon", "loai_mon", "nhom", "phan loai", "phan_loai", "category"}
	customizationsAliases = []string{"hascustomizations", "tuy chinh", "customizable"}
)

// exactOnlyAliases are too short to match inside other headers ("ten" in
// "content", "id" in "paid").
var exactOnlyAliases = map[string]bool{"id": true, "ten": true}

var (
	outOfStockValues = map[string]bool{"FALSE": true, "0": true, "NO": true, "HET": true}
	truthyValues     = map[string]bool{"TRUE": true, "1": true, "YES": true, "CO": true, "X": true}
)

// foldKey lower-cases s and strips Vietnamese diacritics.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "D").Replace(folded)
	return strings.ToLower(strings.TrimSpace(folded))
}

// lookup finds the value of the first column matching aliases. Exact matches
// win over substring matches; among each kind alias order decides.
func lookup(row map[string]interface{}, aliases []string) (interface{}, bool) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	folded := make([]string, len(keys))
	for i, k := range keys {
		folded[i] = foldKey(k)
	}

	for _, alias := range aliases {
		for i, fk := range folded {
			if fk == alias {
				return row[keys[i]], true
			}
		}
	}
	for _, alias := range aliases {
		if exactOnlyAliases[alias] {
			continue
		}
		for i, fk := range folded {
			if strings.Contains(fk, alias) {
				return row[keys[i]], true
			}
		}
	}
	return nil, false
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func priceValue(v interface{}) shop.VND {
	raw, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	var p shop.VND
	if err := json.Unmarshal(raw, &p); err != nil || p < 0 {
		return 0
	}
	return p
}

// ResolveRow turns one loosely named backend row into a MenuRow. Missing or
// unusable values fall back to defaults; it never fails.
func ResolveRow(row map[string]interface{}) domain.MenuRow {
	out := domain.MenuRow{
		Category:          domain.CategoryOther,
		Name:              UnnamedItem,
		HasCustomizations: true,
	}

	if v, ok := lookup(row, idAliases); ok {
		out.ID = stringValue(v)
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}

	if v, ok := lookup(row, nameAliases); ok {
		if name := stringValue(v); name != "" {
			out.Name = name
		}
	}

	if v, ok := lookup(row, priceAliases); ok {
		out.Price = priceValue(v)
	}

	if v, ok := lookup(row, categoryAliases); ok {
		if c := stringValue(v); c != "" {
			out.Category = c
		}
	}

	// A negated column ("isOutOfStock") also contains "stock", so it goes first.
	if v, ok := lookup(row, outOfStockAliases); ok {
		out.IsOutOfStock = truthyValues[strings.ToUpper(foldKey(stringValue(v)))]
	} else if v, ok := lookup(row, stockAliases); ok {
		out.IsOutOfStock = outOfStockValues[strings.ToUpper(foldKey(stringValue(v)))]
	}

	if v, ok := lookup(row, customizationsAliases); ok {
		out.HasCustomizations = strings.ToUpper(stringValue(v)) != "FALSE"
	}

	return out
}
