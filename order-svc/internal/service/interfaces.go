package service

import (
	"context"

	"tiemnuoc/order-svc/internal/domain"
	"tiemnuoc/order-svc/internal/storage"
	"tiemnuoc/pkg/shop"
	"tiemnuoc/pkg/sheets"
)

type MenuCatalog interface {
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
}

type OrderBackend interface {
	StatusFetcher
	CreateOrder(ctx context.Context, order shop.Order) error
	CancelOrder(ctx context.Context, orderID string) error
}

type SessionRepository interface {
	LoadCart(ctx context.Context, session string) ([]shop.CartLine, error)
	SaveCart(ctx context.Context, session string, lines []shop.CartLine) error
	LoadCurrent(ctx context.Context, session string) (*shop.Order, error)
	SaveCurrent(ctx context.Context, session string, order *shop.Order) error
	LoadHistory(ctx context.Context, session string) ([]shop.Order, error)
	SaveHistory(ctx context.Context, session string, orders []shop.Order) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Cart(ctx context.Context, session string) (*domain.CartView, error)
	AddToCart(ctx context.Context, session string, req domain.AddItemRequest) (*domain.CartView, error)
	UpdateQuantity(ctx context.Context, session, cartLineID string, delta int) (*domain.CartView, error)
	ReplaceLine(ctx context.Context, session, cartLineID string, req domain.AddItemRequest) (*domain.CartView, error)
	ClearCart(ctx context.Context, session string) error

	Submit(ctx context.Context, session string, req domain.SubmitRequest) (*shop.Order, error)
	Current(ctx context.Context, session string) (*shop.Order, error)
	History(ctx context.Context, session, timeRange string) ([]shop.Order, error)
	Cancel(ctx context.Context, session string) error
	Edit(ctx context.Context, session string) (*domain.EditResult, error)
	Dismiss(ctx context.Context, session string) error
}

var (
	_ OrderBackend          = (*sheets.Client)(nil)
	_ MenuCatalog           = (*storage.MenuClient)(nil)
	_ SessionRepository     = (*storage.SessionRepository)(nil)
	_ EventPublisher        = (*storage.KafkaPublisher)(nil)
	_ OrderServiceInterface = (*OrderService)(nil)
)
