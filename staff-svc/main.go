package main

import (
	"net/http"

	"tiemnuoc/config"
	"tiemnuoc/pkg/logger"
	"tiemnuoc/pkg/sheets"
	httpapi "tiemnuoc/staff-svc/internal/api/http"
	"tiemnuoc/staff-svc/internal/service"
	"tiemnuoc/staff-svc/internal/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("staff-svc", cfg.IsDevelopment())

	store := config.MustOpenStore(cfg)
	backend := sheets.New(cfg.Sheets.URL, &http.Client{Timeout: cfg.Sheets.Timeout})

	// Popularity boards only exist when agg-svc is consuming order events.
	var popularity service.PopularityReader
	if cfg.KafkaEnabled() {
		popularity = storage.NewPopularityStore(config.MustInitRedis(cfg.Redis))
	} else {
		log.Info().Msg("KAFKA_BROKERS not set, top drinks disabled")
	}

	staff := service.NewStaffService(backend, storage.NewKVRepository(store), popularity)

	handler := httpapi.NewHandler(staff)
	httpapi.StartServer(":"+cfg.Ports.Staff, httpapi.NewRouter(handler))
}
