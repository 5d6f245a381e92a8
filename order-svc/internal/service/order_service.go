package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tiemnuoc/order-svc/internal/domain"
	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingCustomer      = errors.New("customer name is required")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrNoActiveOrder        = errors.New("no order is being tracked")
	ErrOrderClosed          = errors.New("order is already completed or cancelled")
)

// OrderService owns every customer session's cart and tracked order. All
// session state changes go through mu; backend calls are made without it.
type OrderService struct {
	catalog   MenuCatalog
	backend   OrderBackend
	repo      SessionRepository
	publisher EventPublisher
	poller    *Poller
	interval  time.Duration
	policy    ReconcilePolicy
	now       func() time.Time

	mu     sync.Mutex
	polls  map[string]*Poll
	ctx    context.Context
	stop   context.CancelFunc
	closed bool
}

// NewOrderService builds the service. publisher may be nil when events are
// not wanted.
func NewOrderService(catalog MenuCatalog, backend OrderBackend, repo SessionRepository, publisher EventPublisher, pollInterval time.Duration) *OrderService {
	ctx, stop := context.WithCancel(context.Background())
	return &OrderService{
		catalog:   catalog,
		backend:   backend,
		repo:      repo,
		publisher: publisher,
		poller:    NewPoller(backend),
		interval:  pollInterval,
		policy:    DefaultReconcilePolicy,
		now:       time.Now,
		polls:     make(map[string]*Poll),
		ctx:       ctx,
		stop:      stop,
	}
}

func (s *OrderService) SetReconcilePolicy(p ReconcilePolicy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
}

func (s *OrderService) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *OrderService) Cart(ctx context.Context, session string) (*domain.CartView, error) {
	cart, err := s.repo.LoadCart(ctx, session)
	if err != nil {
		return nil, err
	}
	view := NewCartView(cart)
	return &view, nil
}

func (s *OrderService) buildLine(ctx context.Context, req domain.AddItemRequest) (shop.CartLine, error) {
	item, err := s.catalog.GetItem(ctx, req.MenuItemID)
	if err != nil {
		return shop.CartLine{}, err
	}
	return BuildLine(*item, req.Customization)
}

// mutateCart applies fn to the session cart under the lock and saves the result.
func (s *OrderService) mutateCart(ctx context.Context, session string, fn func([]shop.CartLine) ([]shop.CartLine, error)) (*domain.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.LoadCart(ctx, session)
	if err != nil {
		return nil, err
	}
	cart, err = fn(cart)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveCart(ctx, session, cart); err != nil {
		return nil, err
	}
	view := NewCartView(cart)
	return &view, nil
}

func (s *OrderService) AddToCart(ctx context.Context, session string, req domain.AddItemRequest) (*domain.CartView, error) {
	line, err := s.buildLine(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, session, func(cart []shop.CartLine) ([]shop.CartLine, error) {
		return AddItem(cart, line), nil
	})
}

func (s *OrderService) UpdateQuantity(ctx context.Context, session, cartLineID string, delta int) (*domain.CartView, error) {
	return s.mutateCart(ctx, session, func(cart []shop.CartLine) ([]shop.CartLine, error) {
		if !HasLine(cart, cartLineID) {
			return nil, ErrLineNotFound
		}
		return UpdateQuantity(cart, cartLineID, delta), nil
	})
}

func (s *OrderService) ReplaceLine(ctx context.Context, session, cartLineID string, req domain.AddItemRequest) (*domain.CartView, error) {
	line, err := s.buildLine(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, session, func(cart []shop.CartLine) ([]shop.CartLine, error) {
		if !HasLine(cart, cartLineID) {
			return nil, ErrLineNotFound
		}
		return ReplaceLine(cart, cartLineID, line), nil
	})
}

func (s *OrderService) ClearCart(ctx context.Context, session string) error {
	_, err := s.mutateCart(ctx, session, func([]shop.CartLine) ([]shop.CartLine, error) {
		return []shop.CartLine{}, nil
	})
	return err
}

// Submit turns the session cart into an order. The total is recomputed from
// the cart lines; req.Total is ignored.
func (s *OrderService) Submit(ctx context.Context, session string, req domain.SubmitRequest) (*shop.Order, error) {
	cart, err := s.repo.LoadCart(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrMissingCustomer
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = shop.PaymentCash
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	now := s.now()
	order := shop.Order{
		OrderID:       shop.NewOrderID(now),
		CustomerName:  name,
		TableNumber:   strings.TrimSpace(req.TableNumber),
		Items:         cart,
		Total:         ComputeTotal(cart),
		Timestamp:     shop.FormatTimestamp(now),
		Notes:         strings.TrimSpace(req.Notes),
		PaymentMethod: req.PaymentMethod,
		OrderStatus:   shop.StatusReceived,
		PaymentStatus: shop.PaymentUnpaid,
	}

	if err := s.backend.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = s.recordSubmitted(ctx, session, order)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.OrderID).Str("session", session).Int64("total", int64(order.Total)).Msg("order submitted")
	s.publish(domain.EventOrderCreated, order)
	return &order, nil
}

func (s *OrderService) recordSubmitted(ctx context.Context, session string, order shop.Order) error {
	if err := s.repo.SaveCurrent(ctx, session, &order); err != nil {
		return err
	}
	history, err := s.repo.LoadHistory(ctx, session)
	if err != nil {
		return err
	}
	history = append([]shop.Order{order}, history...)
	if err := s.repo.SaveHistory(ctx, session, history); err != nil {
		return err
	}
	// The cart may have changed while createOrder was in flight.
	cart, err := s.repo.LoadCart(ctx, session)
	if err != nil {
		return err
	}
	if err := s.repo.SaveCart(ctx, session, RemoveSubmitted(cart, order.Items)); err != nil {
		return err
	}
	s.startPollLocked(session, order.OrderID)
	return nil
}

// Current returns the tracked order, resuming its status poll if the service
// restarted since it was submitted.
func (s *OrderService) Current(ctx context.Context, session string) (*shop.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.repo.LoadCurrent(ctx, session)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	if !order.OrderStatus.IsTerminal() {
		if p, ok := s.polls[session]; !ok || p.OrderID != order.OrderID {
			s.startPollLocked(session, order.OrderID)
		}
	}
	return order, nil
}

// History lists the session's orders newest first, limited to timeRange.
func (s *OrderService) History(ctx context.Context, session, timeRange string) ([]shop.Order, error) {
	orders, err := s.repo.LoadHistory(ctx, session)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]shop.Order, 0, len(orders))
	for _, o := range orders {
		if inRange(o.PlacedAt(), now, timeRange) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlacedAt().After(out[j].PlacedAt()) })
	return out, nil
}

func inRange(t, now time.Time, timeRange string) bool {
	t, now = t.Local(), now.Local()
	switch timeRange {
	case domain.RangeDay:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case domain.RangeWeek:
		return !t.Before(now.Add(-7 * 24 * time.Hour))
	case domain.RangeMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case domain.RangeYear:
		return t.Year() == now.Year()
	}
	return true
}

func (s *OrderService) trackedOrder(ctx context.Context, session string) (*shop.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.repo.LoadCurrent(ctx, session)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	return order, nil
}

// Cancel cancels the tracked order on the backend and, once the backend has
// accepted, forgets it locally. On failure nothing changes.
func (s *OrderService) Cancel(ctx context.Context, session string) error {
	order, err := s.trackedOrder(ctx, session)
	if err != nil {
		return err
	}
	if order.OrderStatus.IsTerminal() {
		return ErrOrderClosed
	}

	if err := s.backend.CancelOrder(ctx, order.OrderID); err != nil {
		return fmt.Errorf("cancel %s: %w", order.OrderID, err)
	}

	s.mu.Lock()
	err = s.forgetOrder(ctx, session, order.OrderID)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	order.OrderStatus = shop.StatusCancelled
	s.publish(domain.EventOrderCancelled, *order)
	return nil
}

// Edit cancels the tracked order and puts its lines back into the cart so it
// can be changed and submitted again under a new order id.
func (s *OrderService) Edit(ctx context.Context, session string) (*domain.EditResult, error) {
	order, err := s.trackedOrder(ctx, session)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus.IsTerminal() {
		return nil, ErrOrderClosed
	}

	if err := s.backend.CancelOrder(ctx, order.OrderID); err != nil {
		return nil, fmt.Errorf("cancel %s for edit: %w", order.OrderID, err)
	}

	s.mu.Lock()
	err = s.forgetOrder(ctx, session, order.OrderID)
	if err == nil {
		err = s.repo.SaveCart(ctx, session, order.Items)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	cancelled := *order
	cancelled.OrderStatus = shop.StatusCancelled
	s.publish(domain.EventOrderCancelled, cancelled)

	return &domain.EditResult{
		Cart:         NewCartView(order.Items),
		CustomerName: order.CustomerName,
		TableNumber:  order.TableNumber,
		Notes:        order.Notes,
	}, nil
}

// Dismiss stops tracking the current order. History keeps it.
func (s *OrderService) Dismiss(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPollLocked(session)
	return s.repo.SaveCurrent(ctx, session, nil)
}

// forgetOrder drops orderID from the current slot and from history. Caller
// holds mu.
func (s *OrderService) forgetOrder(ctx context.Context, session, orderID string) error {
	s.stopPollLocked(session)

	current, err := s.repo.LoadCurrent(ctx, session)
	if err != nil {
		return err
	}
	if current != nil && current.OrderID == orderID {
		if err := s.repo.SaveCurrent(ctx, session, nil); err != nil {
			return err
		}
	}

	history, err := s.repo.LoadHistory(ctx, session)
	if err != nil {
		return err
	}
	kept := history[:0]
	for _, o := range history {
		if o.OrderID != orderID {
			kept = append(kept, o)
		}
	}
	return s.repo.SaveHistory(ctx, session, kept)
}

func (s *OrderService) startPollLocked(session, orderID string) {
	if s.closed {
		return
	}
	s.stopPollLocked(session)
	s.polls[session] = s.poller.StartPolling(s.ctx, orderID, s.interval, func(report sheets.StatusReport) bool {
		return s.applyStatus(session, orderID, report)
	})
}

func (s *OrderService) stopPollLocked(session string) {
	if p, ok := s.polls[session]; ok {
		p.Cancel()
		delete(s.polls, session)
	}
}

func (s *OrderService) forgetPollLocked(session, orderID string) {
	if p, ok := s.polls[session]; ok && p.OrderID == orderID {
		delete(s.polls, session)
	}
}

// applyStatus reconciles one poll answer into the session. It returns true
// when polling for orderID should stop.
func (s *OrderService) applyStatus(session, orderID string, report sheets.StatusReport) bool {
	ctx := s.ctx

	s.mu.Lock()
	current, err := s.repo.LoadCurrent(ctx, session)
	if err != nil {
		s.mu.Unlock()
		log.Debug().Err(err).Str("session", session).Msg("failed to load tracked order")
		return false
	}
	if current == nil || current.OrderID != orderID {
		s.forgetPollLocked(session, orderID)
		s.mu.Unlock()
		return true
	}

	if !s.policy.ShouldApply(current.OrderStatus, report.OrderStatus) {
		if current.OrderStatus.IsTerminal() || report.OrderStatus != current.OrderStatus {
			log.Warn().
				Str("order_id", orderID).
				Str("local", string(current.OrderStatus)).
				Str("remote", string(report.OrderStatus)).
				Msg("ignoring reported status")
		}
		terminal := current.OrderStatus.IsTerminal()
		if terminal {
			s.forgetPollLocked(session, orderID)
		}
		s.mu.Unlock()
		return terminal
	}

	current.OrderStatus = report.OrderStatus
	if report.PaymentStatus.Valid() {
		current.PaymentStatus = report.PaymentStatus
	}
	if err := s.saveStatus(ctx, session, *current); err != nil {
		s.mu.Unlock()
		log.Debug().Err(err).Str("order_id", orderID).Msg("failed to store reported status")
		return false
	}
	terminal := current.OrderStatus.IsTerminal()
	if terminal {
		s.forgetPollLocked(session, orderID)
	}
	s.mu.Unlock()

	log.Info().Str("order_id", orderID).Str("status", string(current.OrderStatus)).Msg("order status changed")
	s.publish(domain.EventOrderStatusChanged, *current)
	return terminal
}

// saveStatus writes the order into the current slot and mirrors its status
// into the matching history entry.
func (s *OrderService) saveStatus(ctx context.Context, session string, order shop.Order) error {
	if err := s.repo.SaveCurrent(ctx, session, &order); err != nil {
		return err
	}
	history, err := s.repo.LoadHistory(ctx, session)
	if err != nil {
		return err
	}
	for i := range history {
		if history[i].OrderID == order.OrderID {
			history[i].OrderStatus = order.OrderStatus
			history[i].PaymentStatus = order.PaymentStatus
		}
	}
	return s.repo.SaveHistory(ctx, session, history)
}

func (s *OrderService) publish(eventType string, order shop.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.NewOrderEvent(eventType, order, s.now())
	if err := s.publisher.PublishOrderEvent(s.ctx, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Str("order_id", order.OrderID).Msg("failed to publish order event")
	}
}

// Close stops every status poll and waits for them to exit.
func (s *OrderService) Close() {
	s.mu.Lock()
	s.closed = true
	polls := make([]*Poll, 0, len(s.polls))
	for session, p := range s.polls {
		p.Cancel()
		polls = append(polls, p)
		delete(s.polls, session)
	}
	s.mu.Unlock()

	s.stop()
	for _, p := range polls {
		<-p.Done()
	}
}

// ActivePolls is the number of orders currently being polled.
func (s *OrderService) ActivePolls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.polls)
}
