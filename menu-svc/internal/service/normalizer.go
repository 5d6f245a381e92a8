package service

import (
	"strings"
	"unicode"

	"tiemnuoc/menu-svc/internal/domain"

	"golang.org/x/text/unicode/norm"
)

var variantTokens = map[string]domain.VariantTag{
	"nóng": domain.VariantHot,
	"hot":  domain.VariantHot,
	"đá":   domain.VariantIced,
	"ice":  domain.VariantIced,
	"iced": domain.VariantIced,
}

func isNameSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("-()/,|", r)
}

// ParseVariant reads the temperature from the last word of a drink name:
// "Trà Đào - Nóng" is the Hot variant of "Trà Đào". Only the trailing word is
// considered, so "Trà Đá Xí Muội" stays a Default item.
func ParseVariant(name string) (domain.VariantTag, string) {
	name = strings.TrimSpace(norm.NFC.String(name))

	body := strings.TrimRightFunc(name, isNameSeparator)
	cut := strings.LastIndexFunc(body, isNameSeparator)
	token := body[cut+1:]

	tag, ok := variantTokens[strings.ToLower(token)]
	if !ok {
		return domain.VariantDefault, name
	}
	canonical := strings.TrimRightFunc(body[:cut+1], isNameSeparator)
	canonical = strings.TrimLeftFunc(canonical, isNameSeparator)
	if canonical == "" {
		return domain.VariantDefault, name
	}
	return tag, canonical
}

// Normalize merges rows that differ only by temperature into one display item.
// Items keep the order in which their names first appear.
func Normalize(rows []domain.MenuRow) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		tag, name := ParseVariant(row.Name)

		i, seen := index[name]
		if !seen {
			i = len(items)
			index[name] = i
			items = append(items, domain.MenuItem{
				ID:                row.ID,
				Name:              name,
				Price:             row.Price,
				Category:          row.Category,
				HasCustomizations: row.HasCustomizations,
				Variants:          make(map[domain.VariantTag]domain.Variant, 2),
			})
		}

		items[i].Variants[tag] = domain.Variant{
			ID:           row.ID,
			Price:        row.Price,
			IsOutOfStock: row.IsOutOfStock,
		}
	}

	for i := range items {
		item := &items[i]
		item.IsOutOfStock = true
		for _, v := range item.Variants {
			if !v.IsOutOfStock {
				item.IsOutOfStock = false
				break
			}
		}
		if iced, ok := item.Variants[domain.VariantIced]; ok {
			item.ID = iced.ID
			item.Price = iced.Price
		}
	}

	return items
}

var variantSuffix = map[domain.VariantTag]string{
	domain.VariantHot:     " Nóng",
	domain.VariantIced:    " Đá",
	domain.VariantDefault: "",
}

// Explode turns display items back into one row per variant. The variant the
// item is displayed with comes first so that Normalize(Explode(items)) == items.
func Explode(items []domain.MenuItem) []domain.MenuRow {
	var rows []domain.MenuRow
	for _, item := range items {
		order := make([]domain.VariantTag, 0, len(item.Variants))
		for _, tag := range []domain.VariantTag{domain.VariantHot, domain.VariantIced, domain.VariantDefault} {
			if v, ok := item.Variants[tag]; ok && v.ID == item.ID {
				order = append(order, tag)
				break
			}
		}
		for _, tag := range []domain.VariantTag{domain.VariantHot, domain.VariantIced, domain.VariantDefault} {
			if _, ok := item.Variants[tag]; ok && (len(order) == 0 || order[0] != tag) {
				order = append(order, tag)
			}
		}

		for _, tag := range order {
			v := item.Variants[tag]
			rows = append(rows, domain.MenuRow{
				ID:                v.ID,
				Name:              item.Name + variantSuffix[tag],
				Price:             v.Price,
				Category:          item.Category,
				IsOutOfStock:      v.IsOutOfStock,
				HasCustomizations: item.HasCustomizations,
			})
		}
	}
	return rows
}
