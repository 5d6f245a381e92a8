package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
	"tiemnuoc/staff-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Staff service.StaffServiceInterface
}

func NewHandler(staff service.StaffServiceInterface) *Handler {
	return &Handler{Staff: staff}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/staff/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/staff/orders/{id}/status", h.updateStatus).Methods("PUT")
	r.HandleFunc("/api/staff/orders/{id}/advance", h.advance).Methods("POST")

	r.HandleFunc("/api/staff/dashboard", h.dashboard).Methods("GET")

	r.HandleFunc("/api/staff/transactions", h.listTransactions).Methods("GET")
	r.HandleFunc("/api/staff/transactions", h.createTransaction).Methods("POST")
	r.HandleFunc("/api/staff/transactions/{id}", h.deleteTransaction).Methods("DELETE")

	r.HandleFunc("/api/staff/inventory", h.listIntakes).Methods("GET")
	r.HandleFunc("/api/staff/inventory", h.createIntake).Methods("POST")
	r.HandleFunc("/api/staff/materials", h.materials).Methods("GET")

	r.HandleFunc("/api/staff/top-drinks", h.topDrinks).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var backendErr *sheets.BackendError
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrTransactionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidPaymentStatus),
		errors.Is(err, service.ErrInvalidTransaction), errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownMaterial):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &backendErr):
		http.Error(w, backendErr.Message, http.StatusUnprocessableEntity)
	case errors.Is(err, sheets.ErrUnavailable), errors.Is(err, sheets.ErrMalformedResponse), errors.Is(err, sheets.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("staff request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "staff-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = domain.SortTime
	}

	result, err := h.Staff.ListOrders(r.Context(), domain.OrderQuery{
		Sort:   sortBy,
		Status: q.Get("status"),
		Page:   page,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Staff.UpdateStatus(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	order, err := h.Staff.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("range")
	if timeRange == "" {
		timeRange = domain.RangeDay
	}
	dash, err := h.Staff.Dashboard(r.Context(), timeRange)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Staff.Transactions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req domain.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tx, err := h.Staff.CreateTransaction(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Staff.DeleteTransaction(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listIntakes(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Staff.Intakes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) createIntake(w http.ResponseWriter, r *http.Request) {
	var req domain.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	intake, err := h.Staff.CreateIntake(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, intake)
}

func (h *Handler) materials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"materials":  shop.Materials,
		"categories": shop.TransactionCategories,
	})
}

func (h *Handler) topDrinks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	scope := q.Get("scope")
	if scope == "" {
		scope = service.ScopeToday
	}

	drinks, err := h.Staff.TopDrinks(r.Context(), scope, limit)
	if err != nil {
		log.Warn().Err(err).Msg("top drinks unavailable")
		writeJSON(w, http.StatusOK, []domain.DrinkScore{})
		return
	}
	writeJSON(w, http.StatusOK, drinks)
}
