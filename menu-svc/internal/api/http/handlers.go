package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tiemnuoc/menu-svc/internal/domain"
	"tiemnuoc/menu-svc/internal/service"
	"tiemnuoc/pkg/sheets"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const SessionHeader = "X-Session-ID"

type Handler struct {
	Menu service.MenuServiceInterface
	QR   service.QRGenerator
}

func NewHandler(menu service.MenuServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{Menu: menu, QR: qr}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.browse).Methods("GET")
	r.HandleFunc("/api/menu/refresh", h.refresh).Methods("POST")
	r.HandleFunc("/api/menu/options", h.options).Methods("GET")
	r.HandleFunc("/api/menu/items/{id}", h.getItem).Methods("GET")
	r.HandleFunc("/api/menu/favorites", h.getFavorites).Methods("GET")
	r.HandleFunc("/api/menu/favorites/{id}", h.toggleFavorite).Methods("POST")

	r.HandleFunc("/api/tables/{table}/qrcode", h.tableQRCode).Methods("GET")
}

func sessionID(r *http.Request) string {
	if s := r.Header.Get(SessionHeader); s != "" {
		return s
	}
	if s := r.URL.Query().Get("session"); s != "" {
		return s
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var backendErr *sheets.BackendError
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidTable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &backendErr):
		http.Error(w, backendErr.Message, http.StatusUnprocessableEntity)
	case errors.Is(err, sheets.ErrUnavailable), errors.Is(err, sheets.ErrMalformedResponse), errors.Is(err, sheets.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("menu request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Menu.Browse(r.Context(), sessionID(r), domain.BrowseQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, page)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.Refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, items)
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Menu.Options())
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) getFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Menu.Favorites(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ids)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Menu.ToggleFavorite(r.Context(), sessionID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ids)
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.QR.Generate(mux.Vars(r)["table"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
