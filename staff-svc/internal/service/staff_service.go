package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransition    = errors.New("status change not allowed")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
	ErrInvalidTransaction   = errors.New("transaction type must be Thu or Chi")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrUnknownMaterial      = errors.New("unknown material")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

const (
	ScopeToday   = "today"
	ScopeAllTime = "alltime"

	defaultTopLimit = 5
)

type StaffService struct {
	backend    StaffBackend
	repo       BoardRepository
	popularity PopularityReader
	now        func() time.Time

	mu      sync.Mutex
	tracker *NewOrderTracker
}

// NewStaffService builds the staff board. popularity may be nil when Redis is
// not configured; top drinks are then empty.
func NewStaffService(backend StaffBackend, repo BoardRepository, popularity PopularityReader) *StaffService {
	return &StaffService{
		backend:    backend,
		repo:       repo,
		popularity: popularity,
		now:        time.Now,
		tracker:    NewNewOrderTracker(),
	}
}

func (s *StaffService) SetClock(now func() time.Time) {
	s.now = now
}

// orders fetches the order sheet and refreshes the snapshot. When the backend
// fails the snapshot is returned with stale set.
func (s *StaffService) orders(ctx context.Context) ([]shop.Order, bool, error) {
	orders, err := s.backend.GetOrders(ctx)
	if err == nil {
		if orders == nil {
			orders = []shop.Order{}
		}
		s.mu.Lock()
		saveErr := s.repo.SaveOrders(ctx, orders)
		s.mu.Unlock()
		if saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to cache staff orders")
		}
		return orders, false, nil
	}

	cached, found, cacheErr := s.repo.LoadOrders(ctx)
	if cacheErr != nil || !found {
		return nil, false, fmt.Errorf("fetch orders: %w", err)
	}
	log.Warn().Err(err).Int("cached", len(cached)).Msg("serving cached staff orders")
	return cached, true, nil
}

func (s *StaffService) ListOrders(ctx context.Context, query domain.OrderQuery) (*domain.OrderPage, error) {
	orders, stale, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}

	sorted := SortOrders(orders, query.Sort)

	s.mu.Lock()
	fresh := s.tracker.Check(sorted, s.now())
	s.mu.Unlock()
	if len(fresh) > 0 {
		log.Info().Strs("order_ids", fresh).Msg("new orders")
	}

	filtered := FilterOrders(sorted, query.Status)
	items, page, totalPages := Paginate(filtered, query.Page)
	return &domain.OrderPage{
		Orders:      items,
		Page:        page,
		TotalPages:  totalPages,
		Total:       len(filtered),
		NewOrderIDs: fresh,
		Stale:       stale,
	}, nil
}

func findOrder(orders []shop.Order, id string) (shop.Order, bool) {
	for _, o := range orders {
		if o.OrderID == id {
			return o, true
		}
	}
	return shop.Order{}, false
}

func (s *StaffService) lookupOrder(ctx context.Context, orderID string) (shop.Order, error) {
	cached, _, err := s.repo.LoadOrders(ctx)
	if err == nil {
		if o, ok := findOrder(cached, orderID); ok {
			return o, nil
		}
	}
	orders, _, err := s.orders(ctx)
	if err != nil {
		return shop.Order{}, err
	}
	if o, ok := findOrder(orders, orderID); ok {
		return o, nil
	}
	return shop.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
}

// UpdateStatus moves an order along the status machine. A payment-only update
// keeps the order status as is.
func (s *StaffService) UpdateStatus(ctx context.Context, orderID string, update domain.StatusUpdate) (*shop.Order, error) {
	if !update.OrderStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if update.PaymentStatus != "" && !update.PaymentStatus.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paymentOnly := update.OrderStatus == order.OrderStatus && update.PaymentStatus != "" && update.PaymentStatus != order.PaymentStatus
	if !paymentOnly && !shop.CanTransition(order.OrderStatus, update.OrderStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.OrderStatus, update.OrderStatus)
	}

	if err := s.backend.UpdateOrderStatus(ctx, orderID, update.OrderStatus, update.PaymentStatus); err != nil {
		return nil, err
	}

	order.OrderStatus = update.OrderStatus
	if update.PaymentStatus != "" {
		order.PaymentStatus = update.PaymentStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached, _, err := s.repo.LoadOrders(ctx)
	if err == nil {
		for i := range cached {
			if cached[i].OrderID == orderID {
				cached[i] = order
			}
		}
		if err := s.repo.SaveOrders(ctx, cached); err != nil {
			log.Warn().Err(err).Msg("failed to cache staff orders")
		}
	}

	log.Info().Str("order_id", orderID).Str("status", string(order.OrderStatus)).Msg("order status updated")
	return &order, nil
}

func (s *StaffService) Advance(ctx context.Context, orderID string) (*shop.Order, error) {
	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	next, ok := NextStatus(order)
	if !ok {
		return nil, fmt.Errorf("%w: %s is final", ErrInvalidTransition, order.OrderStatus)
	}
	return s.UpdateStatus(ctx, orderID, next)
}

func (s *StaffService) Dashboard(ctx context.Context, timeRange string) (*domain.Dashboard, error) {
	orders, staleOrders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	txs, staleTxs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}

	dash := ComputeDashboard(orders, txs, timeRange, s.now())
	dash.Stale = staleOrders || staleTxs
	return &dash, nil
}

func (s *StaffService) transactions(ctx context.Context) ([]shop.Transaction, bool, error) {
	var stale bool
	txs, err := s.backend.GetTransactions(ctx)
	if err == nil {
		if txs == nil {
			txs = []shop.Transaction{}
		}
		s.mu.Lock()
		saveErr := s.repo.SaveTransactions(ctx, txs)
		s.mu.Unlock()
		if saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to cache transactions")
		}
	} else {
		cached, found, cacheErr := s.repo.LoadTransactions(ctx)
		if cacheErr != nil || !found {
			return nil, false, fmt.Errorf("fetch transactions: %w", err)
		}
		log.Warn().Err(err).Msg("serving cached transactions")
		txs, stale = cached, true
	}

	hidden, err := s.repo.LoadHiddenTransactions(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(hidden) > 0 {
		skip := make(map[string]bool, len(hidden))
		for _, id := range hidden {
			skip[id] = true
		}
		kept := make([]shop.Transaction, 0, len(txs))
		for _, tx := range txs {
			if !skip[tx.ID] {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	return txs, stale, nil
}

// Transactions lists income and expense rows newest first.
func (s *StaffService) Transactions(ctx context.Context) ([]shop.Transaction, error) {
	txs, _, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].RecordedAt().After(txs[j].RecordedAt()) })
	return txs, nil
}

func (s *StaffService) CreateTransaction(ctx context.Context, req domain.TransactionRequest) (*shop.Transaction, error) {
	if req.Type != shop.TransactionIncome && req.Type != shop.TransactionExpense {
		return nil, ErrInvalidTransaction
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "Khác"
	}

	now := s.now()
	tx := shop.Transaction{
		ID:        shop.NewTransactionID(now),
		Type:      req.Type,
		Category:  category,
		Amount:    req.Amount,
		Note:      strings.TrimSpace(req.Note),
		Timestamp: shop.FormatTimestamp(now),
	}
	if err := s.backend.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached, _, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		cached = []shop.Transaction{}
	}
	if err := s.repo.SaveTransactions(ctx, append([]shop.Transaction{tx}, cached...)); err != nil {
		log.Warn().Err(err).Msg("failed to cache transactions")
	}
	return &tx, nil
}

// DeleteTransaction hides a transaction on this board. The sheet row stays.
func (s *StaffService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, _, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return err
	}
	kept := make([]shop.Transaction, 0, len(cached))
	for _, tx := range cached {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(cached) {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if err := s.repo.SaveTransactions(ctx, kept); err != nil {
		return err
	}

	hidden, err := s.repo.LoadHiddenTransactions(ctx)
	if err != nil {
		return err
	}
	return s.repo.SaveHiddenTransactions(ctx, append(hidden, id))
}

func (s *StaffService) Intakes(ctx context.Context) ([]shop.InventoryIntake, error) {
	return s.repo.LoadIntakes(ctx)
}

func (s *StaffService) CreateIntake(ctx context.Context, req domain.IntakeRequest) (*shop.InventoryIntake, error) {
	material, ok := shop.MaterialByCode(req.MaterialCode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, req.MaterialCode)
	}
	if req.Quantity <= 0 || req.UnitPrice <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	intake := shop.InventoryIntake{
		ID:           shop.NewIntakeID(now),
		MaterialCode: material.Code,
		MaterialName: material.Name,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Note:         strings.TrimSpace(req.Note),
		Timestamp:    shop.FormatTimestamp(now),
	}
	if err := s.backend.CreateIntake(ctx, intake); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	logs, err := s.repo.LoadIntakes(ctx)
	if err != nil {
		logs = []shop.InventoryIntake{}
	}
	logs = append([]shop.InventoryIntake{intake}, logs...)
	if len(logs) > domain.IntakeLogSize {
		logs = logs[:domain.IntakeLogSize]
	}
	if err := s.repo.SaveIntakes(ctx, logs); err != nil {
		log.Warn().Err(err).Msg("failed to store inventory log")
	}
	return &intake, nil
}

// TopDrinks ranks drinks by cups sold today or since counting began.
func (s *StaffService) TopDrinks(ctx context.Context, scope string, limit int) ([]domain.DrinkScore, error) {
	if s.popularity == nil {
		return []domain.DrinkScore{}, nil
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if scope == ScopeAllTime {
		return s.popularity.TopAllTime(ctx, limit)
	}
	return s.popularity.TopDaily(ctx, s.now(), limit)
}
