package service

import (
	"errors"
	"fmt"

	"tiemnuoc/order-svc/internal/domain"
	"tiemnuoc/pkg/shop"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownSize     = errors.New("unknown size")
	ErrUnknownTopping  = errors.New("unknown topping")
	ErrUnknownOption   = errors.New("unknown customization option")
	ErrOutOfStock      = errors.New("item is out of stock")
	ErrLineNotFound    = errors.New("cart line not found")
)

// sameLine reports whether two lines describe the same configured drink.
// Toppings are compared as a multiset.
func sameLine(a, b shop.CartLine) bool {
	return a.MenuItemID == b.MenuItemID &&
		a.Size == b.Size &&
		a.Temperature == b.Temperature &&
		a.SugarLevel == b.SugarLevel &&
		a.IceLevel == b.IceLevel &&
		a.Note == b.Note &&
		sameToppings(a.Toppings, b.Toppings)
}

func sameToppings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	for _, t := range b {
		counts[t]--
		if counts[t] < 0 {
			return false
		}
	}
	return true
}

// AddItem merges candidate into a matching line or appends it under a fresh
// line id. On a merge the existing line keeps its price. cart is not modified.
func AddItem(cart []shop.CartLine, candidate shop.CartLine) []shop.CartLine {
	out := make([]shop.CartLine, len(cart), len(cart)+1)
	copy(out, cart)

	for i := range out {
		if sameLine(out[i], candidate) {
			out[i].Quantity += candidate.Quantity
			return out
		}
	}

	candidate.CartLineID = uuid.NewString()
	return append(out, candidate)
}

// UpdateQuantity adds delta to one line and drops every line left with a
// quantity of zero or less.
func UpdateQuantity(cart []shop.CartLine, cartLineID string, delta int) []shop.CartLine {
	out := make([]shop.CartLine, 0, len(cart))
	for _, line := range cart {
		if line.CartLineID == cartLineID {
			line.Quantity += delta
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// ReplaceLine swaps the contents of one line, keeping its id.
func ReplaceLine(cart []shop.CartLine, cartLineID string, newLine shop.CartLine) []shop.CartLine {
	out := make([]shop.CartLine, len(cart))
	copy(out, cart)
	for i := range out {
		if out[i].CartLineID == cartLineID {
			newLine.CartLineID = cartLineID
			out[i] = newLine
			break
		}
	}
	return out
}

func ComputeTotal(cart []shop.CartLine) shop.VND {
	var total shop.VND
	for _, line := range cart {
		total += line.Subtotal()
	}
	return total
}

func ItemCount(cart []shop.CartLine) int {
	n := 0
	for _, line := range cart {
		n += line.Quantity
	}
	return n
}

// RemoveSubmitted takes the submitted lines back out of cart. Quantities added
// to a submitted line after it was sent stay behind, as do new lines.
func RemoveSubmitted(cart, submitted []shop.CartLine) []shop.CartLine {
	sent := make(map[string]int, len(submitted))
	for _, line := range submitted {
		sent[line.CartLineID] += line.Quantity
	}
	out := make([]shop.CartLine, 0, len(cart))
	for _, line := range cart {
		line.Quantity -= sent[line.CartLineID]
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

func HasLine(cart []shop.CartLine, cartLineID string) bool {
	for _, line := range cart {
		if line.CartLineID == cartLineID {
			return true
		}
	}
	return false
}

func NewCartView(cart []shop.CartLine) domain.CartView {
	if cart == nil {
		cart = []shop.CartLine{}
	}
	return domain.CartView{Items: cart, Total: ComputeTotal(cart), ItemCount: ItemCount(cart)}
}

var temperatureVariant = map[string]string{
	shop.TemperatureHot:      "Hot",
	shop.TemperatureIced:     "Iced",
	shop.TemperatureIceAside: "Iced",
}

// BuildLine prices a configured drink: variant price + size surcharge + toppings.
// Drinks without customizations are always added as size S without toppings.
func BuildLine(item domain.MenuItem, c domain.Customization) (shop.CartLine, error) {
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	if c.Quantity < 1 {
		return shop.CartLine{}, ErrInvalidQuantity
	}

	if !item.HasCustomizations {
		c = domain.Customization{Quantity: c.Quantity, Note: c.Note}
	}

	id, price, outOfStock := item.ID, item.Price, item.IsOutOfStock
	if c.Temperature != "" {
		tag, ok := temperatureVariant[c.Temperature]
		if !ok {
			return shop.CartLine{}, fmt.Errorf("%w: temperature %q", ErrUnknownOption, c.Temperature)
		}
		if v, ok := item.Variants[tag]; ok {
			id, price, outOfStock = v.ID, v.Price, v.IsOutOfStock
		}
	}
	if outOfStock {
		return shop.CartLine{}, ErrOutOfStock
	}

	size := shop.Sizes[0]
	if c.Size != "" {
		var ok bool
		if size, ok = shop.FindOption(shop.Sizes, c.Size); !ok {
			return shop.CartLine{}, fmt.Errorf("%w: %q", ErrUnknownSize, c.Size)
		}
	}
	price += size.Price

	toppings := make([]string, 0, len(c.Toppings))
	for _, name := range c.Toppings {
		t, ok := shop.FindOption(shop.Toppings, name)
		if !ok {
			return shop.CartLine{}, fmt.Errorf("%w: %q", ErrUnknownTopping, name)
		}
		toppings = append(toppings, t.Name)
		price += t.Price
	}

	if c.SugarLevel != "" && !shop.Contains(shop.SugarLevels, c.SugarLevel) {
		return shop.CartLine{}, fmt.Errorf("%w: sugar %q", ErrUnknownOption, c.SugarLevel)
	}
	if c.IceLevel != "" && !shop.Contains(shop.IceLevels, c.IceLevel) {
		return shop.CartLine{}, fmt.Errorf("%w: ice %q", ErrUnknownOption, c.IceLevel)
	}

	return shop.CartLine{
		MenuItemID:  id,
		Name:        item.Name,
		Quantity:    c.Quantity,
		UnitPrice:   price,
		Size:        size.Name,
		Toppings:    toppings,
		Temperature: c.Temperature,
		SugarLevel:  c.SugarLevel,
		IceLevel:    c.IceLevel,
		Note:        c.Note,
	}, nil
}
