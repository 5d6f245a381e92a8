package main

import (
	"net/http"

	"tiemnuoc/api-gateway/internal/gateway"
	"tiemnuoc/config"
	"tiemnuoc/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("api-gateway", cfg.IsDevelopment())

	// upstreams may wait a full Sheets round trip themselves
	gw := gateway.NewGateway(cfg.Gateway, &http.Client{Timeout: 2 * cfg.Sheets.Timeout})

	addr := ":" + cfg.Ports.Gateway
	log.Info().
		Str("addr", addr).
		Str("menu", cfg.Gateway.MenuSvcURL).
		Str("order", cfg.Gateway.OrderSvcURL).
		Str("staff", cfg.Gateway.StaffSvcURL).
		Msg("API Gateway starting")
	if err := http.ListenAndServe(addr, gw.SetupRoutes()); err != nil {
		log.Fatal().Err(err).Msg("API Gateway stopped")
	}
}
