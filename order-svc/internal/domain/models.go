package domain

import (
	"errors"
	"time"

	"tiemnuoc/pkg/shop"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItem is the part of a menu-svc display item the cart needs.
type MenuItem struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Price             shop.VND           `json:"price"`
	IsOutOfStock      bool               `json:"isOutOfStock"`
	HasCustomizations bool               `json:"hasCustomizations"`
	Variants          map[string]Variant `json:"variants"`
}

type Variant struct {
	ID           string   `json:"id"`
	Price        shop.VND `json:"price"`
	IsOutOfStock bool     `json:"isOutOfStock"`
}

// Customization is what the customer picked for one drink. An empty Size
// means size S.
type Customization struct {
	Quantity    int      `json:"quantity"`
	Size        string   `json:"size"`
	Toppings    []string `json:"toppings"`
	Temperature string   `json:"temperature"`
	SugarLevel  string   `json:"sugarLevel"`
	IceLevel    string   `json:"iceLevel"`
	Note        string   `json:"note"`
}

type AddItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Customization
}

type CartView struct {
	Items     []shop.CartLine `json:"items"`
	Total     shop.VND        `json:"total"`
	ItemCount int             `json:"itemCount"`
}

type SubmitRequest struct {
	CustomerName  string             `json:"customerName"`
	TableNumber   string             `json:"tableNumber"`
	Notes         string             `json:"notes"`
	PaymentMethod shop.PaymentMethod `json:"paymentMethod"`
	// Total is whatever the client believes the total is. It is never used.
	Total shop.VND `json:"total,omitempty"`
}

// EditResult is what the order form is refilled with after an edit.
type EditResult struct {
	Cart         CartView `json:"cart"`
	CustomerName string   `json:"customerName"`
	TableNumber  string   `json:"tableNumber"`
	Notes        string   `json:"notes"`
}

const (
	RangeAll   = "all"
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderCancelled     = "order_cancelled"
	EventOrderStatusChanged = "order_status_changed"
)

type EventItem struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	UnitPrice  shop.VND `json:"unit_price"`
}

type OrderEvent struct {
	Type          string             `json:"type"`
	OrderID       string             `json:"order_id"`
	OrderStatus   shop.OrderStatus   `json:"order_status,omitempty"`
	PaymentStatus shop.PaymentStatus `json:"payment_status,omitempty"`
	Items         []EventItem        `json:"items,omitempty"`
	Total         shop.VND           `json:"total"`
	PlacedAt      time.Time          `json:"placed_at"`
	Timestamp     time.Time          `json:"timestamp"`
}

func NewOrderEvent(eventType string, order shop.Order, now time.Time) OrderEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, EventItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}
	return OrderEvent{
		Type:          eventType,
		OrderID:       order.OrderID,
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		Total:         order.Total,
		PlacedAt:      order.PlacedAt(),
		Timestamp:     now,
	}
}
