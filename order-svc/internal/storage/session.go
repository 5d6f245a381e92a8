package storage

import (
	"context"

	"tiemnuoc/pkg/kvstore"
	"tiemnuoc/pkg/shop"
)

const (
	cartKey    = "cart"
	currentKey = "submittedOrder"
	historyKey = "orderHistory"
)

// SessionRepository keeps each customer session's cart, tracked order and
// order history under "session:<id>:<key>".
type SessionRepository struct {
	Store kvstore.Store
}

func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{Store: store}
}

func (r *SessionRepository) session(id string) kvstore.Store {
	return kvstore.WithPrefix(r.Store, "session:"+id)
}

func (r *SessionRepository) LoadCart(ctx context.Context, session string) ([]shop.CartLine, error) {
	lines := []shop.CartLine{}
	if _, err := r.session(session).Get(ctx, cartKey, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *SessionRepository) SaveCart(ctx context.Context, session string, lines []shop.CartLine) error {
	return r.session(session).Set(ctx, cartKey, lines)
}

// LoadCurrent returns nil when the session tracks no order.
func (r *SessionRepository) LoadCurrent(ctx context.Context, session string) (*shop.Order, error) {
	var order shop.Order
	found, err := r.session(session).Get(ctx, currentKey, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

// SaveCurrent with a nil order forgets the tracked order.
func (r *SessionRepository) SaveCurrent(ctx context.Context, session string, order *shop.Order) error {
	if order == nil {
		return r.session(session).Delete(ctx, currentKey)
	}
	return r.session(session).Set(ctx, currentKey, order)
}

func (r *SessionRepository) LoadHistory(ctx context.Context, session string) ([]shop.Order, error) {
	orders := []shop.Order{}
	if _, err := r.session(session).Get(ctx, historyKey, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *SessionRepository) SaveHistory(ctx context.Context, session string, orders []shop.Order) error {
	return r.session(session).Set(ctx, historyKey, orders)
}
