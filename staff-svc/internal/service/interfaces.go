package service

import (
	"context"
	"time"

	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
	"tiemnuoc/staff-svc/internal/storage"
)

type StaffBackend interface {
	GetOrders(ctx context.Context) ([]shop.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status shop.OrderStatus, payment shop.PaymentStatus) error
	GetTransactions(ctx context.Context) ([]shop.Transaction, error)
	CreateTransaction(ctx context.Context, tx shop.Transaction) error
	CreateIntake(ctx context.Context, intake shop.InventoryIntake) error
}

type BoardRepository interface {
	LoadOrders(ctx context.Context) ([]shop.Order, bool, error)
	SaveOrders(ctx context.Context, orders []shop.Order) error
	LoadTransactions(ctx context.Context) ([]shop.Transaction, bool, error)
	SaveTransactions(ctx context.Context, txs []shop.Transaction) error
	LoadHiddenTransactions(ctx context.Context) ([]string, error)
	SaveHiddenTransactions(ctx context.Context, ids []string) error
	LoadIntakes(ctx context.Context) ([]shop.InventoryIntake, error)
	SaveIntakes(ctx context.Context, logs []shop.InventoryIntake) error
}

type PopularityReader interface {
	TopDaily(ctx context.Context, day time.Time, limit int) ([]domain.DrinkScore, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.DrinkScore, error)
}

type StaffServiceInterface interface {
	ListOrders(ctx context.Context, query domain.OrderQuery) (*domain.OrderPage, error)
	UpdateStatus(ctx context.Context, orderID string, update domain.StatusUpdate) (*shop.Order, error)
	Advance(ctx context.Context, orderID string) (*shop.Order, error)
	Dashboard(ctx context.Context, timeRange string) (*domain.Dashboard, error)

	Transactions(ctx context.Context) ([]shop.Transaction, error)
	CreateTransaction(ctx context.Context, req domain.TransactionRequest) (*shop.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	Intakes(ctx context.Context) ([]shop.InventoryIntake, error)
	CreateIntake(ctx context.Context, req domain.IntakeRequest) (*shop.InventoryIntake, error)

	TopDrinks(ctx context.Context, scope string, limit int) ([]domain.DrinkScore, error)
}

var (
	_ StaffBackend          = (*sheets.Client)(nil)
	_ BoardRepository       = (*storage.KVRepository)(nil)
	_ PopularityReader      = (*storage.PopularityStore)(nil)
	_ StaffServiceInterface = (*StaffService)(nil)
)
