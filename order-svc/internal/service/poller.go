package service

import (
	"context"
	"time"

	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"

	"github.com/rs/zerolog/log"
)

// ReconcilePolicy decides which backend-reported statuses overwrite the local one.
type ReconcilePolicy int

const (
	// ReconcileLastWriteWins applies whatever the backend reports last, except
	// moves out of a terminal status.
	ReconcileLastWriteWins ReconcilePolicy = iota
	// ReconcileForwardOnly applies only moves the order state machine allows.
	ReconcileForwardOnly
)

const DefaultReconcilePolicy = ReconcileLastWriteWins

// DefaultPollInterval is the customer view's status refresh rate.
const DefaultPollInterval = 10 * time.Second

// ShouldApply reports whether remote replaces local under policy.
func (p ReconcilePolicy) ShouldApply(local, remote shop.OrderStatus) bool {
	if remote == local || !remote.Valid() {
		return false
	}
	if local.IsTerminal() {
		return false
	}
	if p == ReconcileForwardOnly {
		return shop.CanTransition(local, remote)
	}
	return true
}

type StatusFetcher interface {
	GetOrderStatus(ctx context.Context, orderID string) (*sheets.StatusReport, error)
}

// Poll is one running status poll. Cancel is safe to call more than once.
type Poll struct {
	OrderID string
	cancel  context.CancelFunc
	done    chan struct{}
}

func (p *Poll) Cancel() {
	p.cancel()
}

// Done is closed once the poll loop has exited.
func (p *Poll) Done() <-chan struct{} {
	return p.done
}

type Poller struct {
	Fetcher StatusFetcher
}

func NewPoller(fetcher StatusFetcher) *Poller {
	return &Poller{Fetcher: fetcher}
}

// StartPolling asks the backend for the order status every interval and hands
// each answer to onUpdate until onUpdate returns true or the poll is
// cancelled. Failed requests are retried on the next tick. Only one request is
// in flight at a time.
func (p *Poller) StartPolling(ctx context.Context, orderID string, interval time.Duration, onUpdate func(sheets.StatusReport) bool) *Poll {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	poll := &Poll{OrderID: orderID, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(poll.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			report, err := p.Fetcher.GetOrderStatus(ctx, orderID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Debug().Err(err).Str("order_id", orderID).Msg("status poll failed, retrying next tick")
				continue
			}
			if ctx.Err() != nil {
				return
			}
			if onUpdate(*report) {
				return
			}
		}
	}()

	return poll
}
