package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiemnuoc/config"
	httpapi "tiemnuoc/order-svc/internal/api/http"
	"tiemnuoc/order-svc/internal/service"
	"tiemnuoc/order-svc/internal/storage"
	"tiemnuoc/pkg/logger"
	"tiemnuoc/pkg/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("order-svc", cfg.IsDevelopment())

	store := config.MustOpenStore(cfg)
	backend := sheets.New(cfg.Sheets.URL, &http.Client{Timeout: cfg.Sheets.Timeout})
	catalog := storage.NewMenuClient(cfg.Gateway.MenuSvcURL, &http.Client{Timeout: 5 * time.Second})

	var publisher service.EventPublisher
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg.Kafka)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.OrderTopic).Msg("publishing order events")
	}

	orders := service.NewOrderService(catalog, backend, storage.NewSessionRepository(store), publisher, cfg.Sheets.PollInterval)
	defer orders.Close()

	srv := httpapi.NewServer(":"+cfg.Ports.Order, httpapi.NewRouter(httpapi.NewHandler(orders)))
	go httpapi.StartServer(srv)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down order service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}
