package domain

import "time"

const (
	EventOrderCreated   = "order_created"
	EventOrderCancelled = "order_cancelled"
)

type EventItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// OrderEvent is the subset of order-svc's event payload the aggregator reads.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	Items     []EventItem `json:"items"`
	PlacedAt  time.Time   `json:"placed_at"`
	Timestamp time.Time   `json:"timestamp"`
}

// Day is the date the order counts towards.
func (e OrderEvent) Day() time.Time {
	if !e.PlacedAt.IsZero() {
		return e.PlacedAt
	}
	return e.Timestamp
}

// Cups sums quantities per drink name, skipping unnamed or empty lines.
func (e OrderEvent) Cups() map[string]int {
	cups := map[string]int{}
	for _, item := range e.Items {
		if item.Name == "" || item.Quantity <= 0 {
			continue
		}
		cups[item.Name] += item.Quantity
	}
	return cups
}
