package tests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "tiemnuoc/order-svc/internal/api/http"
	"tiemnuoc/order-svc/internal/domain"
	"tiemnuoc/order-svc/internal/mocks"
	"tiemnuoc/order-svc/internal/service"
	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(orders *mocks.OrderServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(orders)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_addItem(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMocks func(*mocks.OrderServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"menuItemId":"M02","quantity":2,"size":"M","toppings":["tp1"]}`,
			prepareMocks: func(m *mocks.OrderServiceInterface) {
				m.On("AddToCart", mock.Anything, "s1", domain.AddItemRequest{
					MenuItemID:    "M02",
					Customization: domain.Customization{Quantity: 2, Size: "M", Toppings: []string{"tp1"}},
				}).Return(&domain.CartView{Total: 90000, ItemCount: 2}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"total":90000`,
		},
		{
			name:         "invalid json",
			body:         `{`,
			prepareMocks: func(m *mocks.OrderServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing item id",
			body:         `{"quantity":1}`,
			prepareMocks: func(m *mocks.OrderServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "out of stock",
			body: `{"menuItemId":"M07"}`,
			prepareMocks: func(m *mocks.OrderServiceInterface) {
				m.On("AddToCart", mock.Anything, "s1", mock.Anything).Return(nil, service.ErrOutOfStock).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "unknown item",
			body: `{"menuItemId":"M99"}`,
			prepareMocks: func(m *mocks.OrderServiceInterface) {
				m.On("AddToCart", mock.Anything, "s1", mock.Anything).Return(nil, domain.ErrMenuItemNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderServiceInterface(t)
			testCase.prepareMocks(orders)
			router := setupTestRouter(orders)

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(testCase.body))
			req.Header.Set(httpapi.SessionHeader, "s1")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_changeQuantity(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(orders)

	orders.On("UpdateQuantity", mock.Anything, "default", "line-1", -1).Return(&domain.CartView{}, nil).Once()
	orders.On("UpdateQuantity", mock.Anything, "default", "gone", 1).Return(nil, service.ErrLineNotFound).Once()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/api/cart/lines/line-1", strings.NewReader(`{"delta":-1}`)))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/api/cart/lines/gone", strings.NewReader(`{"delta":1}`)))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_submit(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "created", expectedCode: http.StatusCreated},
		{name: "empty cart", err: service.ErrEmptyCart, expectedCode: http.StatusBadRequest},
		{name: "missing name", err: service.ErrMissingCustomer, expectedCode: http.StatusBadRequest},
		{name: "backend rejected", err: &sheets.BackendError{Message: "Invalid action"}, expectedCode: http.StatusUnprocessableEntity},
		{name: "backend down", err: sheets.ErrUnavailable, expectedCode: http.StatusBadGateway},
		{name: "storage broken", err: errors.New("disk"), expectedCode: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderServiceInterface(t)
			router := setupTestRouter(orders)

			var order *shop.Order
			if testCase.err == nil {
				order = &shop.Order{OrderID: "ORD-123456", Total: 45000}
			}
			orders.On("Submit", mock.Anything, "s1", domain.SubmitRequest{CustomerName: "Lan", TableNumber: "5"}).
				Return(order, testCase.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/orders?session=s1", strings.NewReader(`{"customerName":"Lan","tableNumber":"5"}`))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_currentOrder(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(orders)

	orders.On("Current", mock.Anything, "s1").Return(&shop.Order{OrderID: "ORD-000001", OrderStatus: shop.StatusInProgress}, nil).Once()
	orders.On("Current", mock.Anything, "s2").Return(nil, service.ErrNoActiveOrder).Once()
	orders.On("Cancel", mock.Anything, "s1").Return(service.ErrOrderClosed).Once()
	orders.On("Edit", mock.Anything, "s1").Return(&domain.EditResult{CustomerName: "Lan"}, nil).Once()
	orders.On("Dismiss", mock.Anything, "s1").Return(nil).Once()

	do := func(method, url, session string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, url, nil)
		req.Header.Set(httpapi.SessionHeader, session)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	rec := do(http.MethodGet, "/api/orders/current", "s1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Đang làm")

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/orders/current", "s2").Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/orders/current/cancel", "s1").Code)

	rec = do(http.MethodPost, "/api/orders/current/edit", "s1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerName":"Lan"`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/orders/current", "s1").Code)
}

func TestHandler_history(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(orders)

	orders.On("History", mock.Anything, "default", domain.RangeAll).Return([]shop.Order{}, nil).Once()
	orders.On("History", mock.Anything, "default", domain.RangeWeek).Return([]shop.Order{{OrderID: "ORD-000001"}}, nil).Once()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/orders/history", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/orders/history?range=week", nil))
	assert.Contains(t, recorder.Body.String(), "ORD-000001")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/orders/history?range=decade", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
