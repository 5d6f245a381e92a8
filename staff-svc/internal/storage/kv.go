package storage

import (
	"context"

	"tiemnuoc/pkg/kvstore"
	"tiemnuoc/pkg/shop"
)

const (
	ordersKey       = "staff_orders"
	expensesKey     = "admin_expenses"
	hiddenTxKey     = "admin_expenses_hidden"
	inventoryLogKey = "inventory_logs"
)

// KVRepository keeps the staff board's last known snapshots so the board
// still renders while the backend is unreachable.
type KVRepository struct {
	Store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{Store: store}
}

func (r *KVRepository) LoadOrders(ctx context.Context) ([]shop.Order, bool, error) {
	orders := []shop.Order{}
	found, err := r.Store.Get(ctx, ordersKey, &orders)
	return orders, found, err
}

func (r *KVRepository) SaveOrders(ctx context.Context, orders []shop.Order) error {
	return r.Store.Set(ctx, ordersKey, orders)
}

func (r *KVRepository) LoadTransactions(ctx context.Context) ([]shop.Transaction, bool, error) {
	txs := []shop.Transaction{}
	found, err := r.Store.Get(ctx, expensesKey, &txs)
	return txs, found, err
}

func (r *KVRepository) SaveTransactions(ctx context.Context, txs []shop.Transaction) error {
	return r.Store.Set(ctx, expensesKey, txs)
}

// LoadHiddenTransactions returns ids of transactions deleted on this board.
func (r *KVRepository) LoadHiddenTransactions(ctx context.Context) ([]string, error) {
	ids := []string{}
	_, err := r.Store.Get(ctx, hiddenTxKey, &ids)
	return ids, err
}

func (r *KVRepository) SaveHiddenTransactions(ctx context.Context, ids []string) error {
	return r.Store.Set(ctx, hiddenTxKey, ids)
}

func (r *KVRepository) LoadIntakes(ctx context.Context) ([]shop.InventoryIntake, error) {
	logs := []shop.InventoryIntake{}
	_, err := r.Store.Get(ctx, inventoryLogKey, &logs)
	return logs, err
}

func (r *KVRepository) SaveIntakes(ctx context.Context, logs []shop.InventoryIntake) error {
	return r.Store.Set(ctx, inventoryLogKey, logs)
}
