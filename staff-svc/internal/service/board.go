package service

import (
	"sort"
	"time"

	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
)

// SortOrders returns a sorted copy. "status" orders by board priority with
// newest first inside a status; anything else is newest first.
func SortOrders(orders []shop.Order, by string) []shop.Order {
	out := make([]shop.Order, len(orders))
	copy(out, orders)

	newer := func(i, j int) bool { return out[i].PlacedAt().After(out[j].PlacedAt()) }
	if by == domain.SortStatus {
		sort.SliceStable(out, func(i, j int) bool {
			pi, pj := out[i].OrderStatus.Priority(), out[j].OrderStatus.Priority()
			if pi != pj {
				return pi < pj
			}
			return newer(i, j)
		})
		return out
	}
	sort.SliceStable(out, newer)
	return out
}

func FilterOrders(orders []shop.Order, status string) []shop.Order {
	if status == "" || status == domain.FilterAll {
		return orders
	}
	out := make([]shop.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.OrderStatus) == status {
			out = append(out, o)
		}
	}
	return out
}

// Paginate cuts one page out of orders. page is clamped to [1, totalPages].
func Paginate(orders []shop.Order, page int) (items []shop.Order, current, totalPages int) {
	totalPages = (len(orders) + domain.PageSize - 1) / domain.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * domain.PageSize
	end := start + domain.PageSize
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end], page, totalPages
}

// IsNew reports whether o is a received order placed less than a minute ago.
func IsNew(o shop.Order, now time.Time) bool {
	if o.OrderStatus != shop.StatusReceived {
		return false
	}
	placed := o.PlacedAt()
	return !placed.IsZero() && now.Sub(placed) < domain.NewOrderWindow
}

// NewOrderTracker remembers which new orders staff were already alerted about.
type NewOrderTracker struct {
	notified map[string]bool
}

func NewNewOrderTracker() *NewOrderTracker {
	return &NewOrderTracker{notified: make(map[string]bool)}
}

// Check returns the ids of new orders not seen by an earlier Check.
func (t *NewOrderTracker) Check(orders []shop.Order, now time.Time) []string {
	fresh := []string{}
	for _, o := range orders {
		if IsNew(o, now) && !t.notified[o.OrderID] {
			t.notified[o.OrderID] = true
			fresh = append(fresh, o.OrderID)
		}
	}
	return fresh
}

// NextStatus is the quick action on an order card: start making a received
// order, finish and mark paid one in progress.
func NextStatus(o shop.Order) (domain.StatusUpdate, bool) {
	switch o.OrderStatus {
	case shop.StatusReceived:
		return domain.StatusUpdate{OrderStatus: shop.StatusInProgress}, true
	case shop.StatusInProgress:
		return domain.StatusUpdate{OrderStatus: shop.StatusCompleted, PaymentStatus: shop.PaymentPaid}, true
	}
	return domain.StatusUpdate{}, false
}
