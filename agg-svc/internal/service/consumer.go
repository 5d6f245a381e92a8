package service

import (
	"context"
	"encoding/json"
	"errors"

	"tiemnuoc/agg-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled. Bad payloads and store failures are
// logged and skipped so one message cannot stall the group.
func (c *Consumer) Start(ctx context.Context) {
	log.Info().Msg("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Msg("Aggregation consumer stopped")
				return
			}
			log.Error().Err(err).Msg("Error reading message")
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Warn().Err(err).Int64("offset", message.Offset).Msg("Error unmarshaling message")
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("order_id", event.OrderID).Str("type", event.Type).Msg("Error updating popularity")
		}
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	switch event.Type {
	case domain.EventOrderCreated:
		if err := c.Store.RecordOrder(ctx, event.Day(), event.Cups()); err != nil {
			return err
		}
	case domain.EventOrderCancelled:
		if err := c.Store.RevertOrder(ctx, event.Day(), event.Cups()); err != nil {
			return err
		}
	default:
		return nil
	}
	log.Debug().Str("order_id", event.OrderID).Str("type", event.Type).Msg("Popularity updated")
	return nil
}
