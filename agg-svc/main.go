package main

import (
	"context"
	"os/signal"
	"syscall"

	"tiemnuoc/agg-svc/internal/service"
	"tiemnuoc/agg-svc/internal/storage"
	"tiemnuoc/config"
	"tiemnuoc/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("agg-svc", cfg.IsDevelopment())

	if !cfg.KafkaEnabled() {
		log.Fatal().Msg("KAFKA_BROKERS is required for agg-svc")
	}

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka, cfg.Kafka.AggGroupID)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb))
	consumer.Start(ctx)
}
