package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tiemnuoc/config"
	"tiemnuoc/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// SessionHeader carries the anonymous customer session between the browser,
// the gateway and order-svc.
const SessionHeader = "X-Session-ID"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Gateway struct {
	config config.GatewayConfig
	client HTTPClient
}

func NewGateway(cfg config.GatewayConfig, client HTTPClient) *Gateway {
	return &Gateway{
		config: cfg,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", targetURL).Msg("proxy")

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create request")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("target", targetURL).Msg("Failed to proxy")
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Err(err).Msg("Failed to copy response")
	}
}

// upstream picks the service owning an /api path, or "" when none does.
func (g *Gateway) upstream(path string) string {
	switch {
	case hasSegmentPrefix(path, "/api/menu"), hasSegmentPrefix(path, "/api/tables"):
		return g.config.MenuSvcURL
	case hasSegmentPrefix(path, "/api/cart"), hasSegmentPrefix(path, "/api/orders"):
		return g.config.OrderSvcURL
	case hasSegmentPrefix(path, "/api/staff"):
		return g.config.StaffSvcURL
	}
	return ""
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if !strings.HasPrefix(path, "/api/") {
		g.serveApp(w, r)
		return
	}

	target := g.upstream(path)
	if target == "" {
		log.Warn().Str("path", path).Msg("Unmatched API route")
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	// Customers get a session on first contact; the browser echoes it back.
	if strings.HasPrefix(path, "/api/cart") || strings.HasPrefix(path, "/api/orders") {
		if r.Header.Get(SessionHeader) == "" {
			id := uuid.NewString()
			r.Header.Set(SessionHeader, id)
			w.Header().Set(SessionHeader, id)
		}
	}

	g.ProxyRequest(w, r, target)
}

// serveApp serves a static file when it exists and the SPA shell otherwise.
func (g *Gateway) serveApp(w http.ResponseWriter, r *http.Request) {
	dir := g.config.StaticDir
	clean := filepath.Clean("/" + r.URL.Path)
	candidate := filepath.Join(dir, clean)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		http.ServeFile(w, r, candidate)
		return
	}
	http.ServeFile(w, r, filepath.Join(dir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(logger.Middleware)
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
