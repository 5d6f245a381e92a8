package main

import (
	"context"
	"net/http"

	"tiemnuoc/config"
	httpapi "tiemnuoc/menu-svc/internal/api/http"
	"tiemnuoc/menu-svc/internal/service"
	"tiemnuoc/menu-svc/internal/storage"
	"tiemnuoc/pkg/logger"
	"tiemnuoc/pkg/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("menu-svc", cfg.IsDevelopment())

	if cfg.Sheets.URL == "" {
		log.Warn().Msg("SHEETS_URL is not set, menu requests will fail until it is configured")
	}

	store := config.MustOpenStore(cfg)
	backend := sheets.New(cfg.Sheets.URL, &http.Client{Timeout: cfg.Sheets.Timeout})

	menu := service.NewMenuService(backend, storage.NewKVRepository(store))
	menu.StartAutoRefresh(context.Background(), cfg.Sheets.RefreshInterval)

	handler := httpapi.NewHandler(menu, service.TableQRGenerator{BaseURL: cfg.PublicURL})
	httpapi.StartServer(":"+cfg.Ports.Menu, httpapi.NewRouter(handler))
}
