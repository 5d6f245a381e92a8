package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tiemnuoc/order-svc/internal/domain"
	"tiemnuoc/order-svc/internal/service"
	"tiemnuoc/pkg/sheets"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const SessionHeader = "X-Session-ID"

type Handler struct {
	Orders service.OrderServiceInterface
}

func NewHandler(orders service.OrderServiceInterface) *Handler {
	return &Handler{Orders: orders}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/cart/lines/{id}", h.changeQuantity).Methods("PATCH")
	r.HandleFunc("/api/cart/lines/{id}", h.replaceLine).Methods("PUT")

	r.HandleFunc("/api/orders", h.submit).Methods("POST")
	r.HandleFunc("/api/orders/current", h.current).Methods("GET")
	r.HandleFunc("/api/orders/current", h.dismiss).Methods("DELETE")
	r.HandleFunc("/api/orders/current/cancel", h.cancel).Methods("POST")
	r.HandleFunc("/api/orders/current/edit", h.edit).Methods("POST")
	r.HandleFunc("/api/orders/history", h.history).Methods("GET")
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isValidation(err error) bool {
	for _, target := range []error{
		service.ErrInvalidQuantity,
		service.ErrUnknownSize,
		service.ErrUnknownTopping,
		service.ErrUnknownOption,
		service.ErrOutOfStock,
		service.ErrEmptyCart,
		service.ErrMissingCustomer,
		service.ErrInvalidPaymentMethod,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, err error) {
	var backendErr *sheets.BackendError
	switch {
	case isValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrLineNotFound), errors.Is(err, service.ErrNoActiveOrder), errors.Is(err, domain.ErrMenuItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrOrderClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &backendErr):
		http.Error(w, backendErr.Message, http.StatusUnprocessableEntity)
	case errors.Is(err, sheets.ErrUnavailable), errors.Is(err, sheets.ErrMalformedResponse), errors.Is(err, sheets.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("order request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Orders.Cart(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.ClearCart(r.Context(), sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MenuItemID == "" {
		http.Error(w, "menuItemId is required", http.StatusBadRequest)
		return
	}

	cart, err := h.Orders.AddToCart(r.Context(), sessionID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.Orders.UpdateQuantity(r.Context(), sessionID(r), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) replaceLine(w http.ResponseWriter, r *http.Request) {
	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MenuItemID == "" {
		http.Error(w, "menuItemId is required", http.StatusBadRequest)
		return
	}

	cart, err := h.Orders.ReplaceLine(r.Context(), sessionID(r), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Submit(r.Context(), sessionID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Current(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Dismiss(r.Context(), sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Cancel(r.Context(), sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	result, err := h.Orders.Edit(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("range")
	if timeRange == "" {
		timeRange = domain.RangeAll
	}
	switch timeRange {
	case domain.RangeAll, domain.RangeDay, domain.RangeWeek, domain.RangeMonth, domain.RangeYear:
	default:
		http.Error(w, "range must be one of all, day, week, month, year", http.StatusBadRequest)
		return
	}

	orders, err := h.Orders.History(r.Context(), sessionID(r), timeRange)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
