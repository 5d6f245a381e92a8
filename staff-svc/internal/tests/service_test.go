package tests

import (
	"context"
	"testing"
	"time"

	"tiemnuoc/pkg/kvstore"
	"tiemnuoc/pkg/sheets"
	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
	"tiemnuoc/staff-svc/internal/mocks"
	"tiemnuoc/staff-svc/internal/service"
	"tiemnuoc/staff-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStaffService(t *testing.T) (*service.StaffService, *mocks.StaffBackend, *storage.KVRepository) {
	t.Helper()
	backend := mocks.NewStaffBackend(t)
	repo := storage.NewKVRepository(kvstore.NewMemoryStore())
	svc := service.NewStaffService(backend, repo, nil)
	svc.SetClock(func() time.Time { return boardNow })
	return svc, backend, repo
}

func TestStaffService_ListOrders(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newStaffService(t)

	orders := []shop.Order{
		order("ORD-000001", shop.StatusCompleted, boardNow.Add(-time.Hour), 30000),
		order("ORD-000002", shop.StatusReceived, boardNow.Add(-20*time.Second), 45000),
		order("ORD-000003", shop.StatusInProgress, boardNow.Add(-5*time.Minute), 25000),
	}
	backend.On("GetOrders", mock.Anything).Return(orders, nil).Twice()

	page, err := svc.ListOrders(ctx, domain.OrderQuery{Sort: domain.SortStatus, Status: domain.FilterAll, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-000002", "ORD-000003", "ORD-000001"}, ids(page.Orders))
	assert.Equal(t, []string{"ORD-000002"}, page.NewOrderIDs)
	assert.False(t, page.Stale)

	cached, found, err := repo.LoadOrders(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, cached, 3)

	page, err = svc.ListOrders(ctx, domain.OrderQuery{Status: string(shop.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-000001"}, ids(page.Orders))
	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.NewOrderIDs)
}

func TestStaffService_ListOrdersFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newStaffService(t)

	backend.On("GetOrders", mock.Anything).Return(nil, sheets.ErrUnavailable).Twice()

	_, err := svc.ListOrders(ctx, domain.OrderQuery{})
	assert.ErrorIs(t, err, sheets.ErrUnavailable)

	require.NoError(t, repo.SaveOrders(ctx, []shop.Order{order("ORD-000009", shop.StatusReceived, boardNow, 0)}))
	page, err := svc.ListOrders(ctx, domain.OrderQuery{})
	require.NoError(t, err)
	assert.True(t, page.Stale)
	assert.Len(t, page.Orders, 1)
}

func TestStaffService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       shop.OrderStatus
		update        domain.StatusUpdate
		prepareMocks  func(*mocks.StaffBackend)
		expectedError error
	}{
		{
			name:    "start making",
			current: shop.StatusReceived,
			update:  domain.StatusUpdate{OrderStatus: shop.StatusInProgress},
			prepareMocks: func(m *mocks.StaffBackend) {
				m.On("UpdateOrderStatus", mock.Anything, "ORD-000001", shop.StatusInProgress, shop.PaymentStatus("")).Return(nil).Once()
			},
		},
		{
			name:    "mark paid only",
			current: shop.StatusCompleted,
			update:  domain.StatusUpdate{OrderStatus: shop.StatusCompleted, PaymentStatus: shop.PaymentPaid},
			prepareMocks: func(m *mocks.StaffBackend) {
				m.On("UpdateOrderStatus", mock.Anything, "ORD-000001", shop.StatusCompleted, shop.PaymentPaid).Return(nil).Once()
			},
		},
		{
			name:          "reopen cancelled",
			current:       shop.StatusCancelled,
			update:        domain.StatusUpdate{OrderStatus: shop.StatusReceived},
			prepareMocks:  func(m *mocks.StaffBackend) {},
			expectedError: service.ErrInvalidTransition,
		},
		{
			name:          "unknown status",
			current:       shop.StatusReceived,
			update:        domain.StatusUpdate{OrderStatus: "Đang giao"},
			prepareMocks:  func(m *mocks.StaffBackend) {},
			expectedError: service.ErrInvalidStatus,
		},
		{
			name:          "unknown payment",
			current:       shop.StatusReceived,
			update:        domain.StatusUpdate{OrderStatus: shop.StatusInProgress, PaymentStatus: "Nợ"},
			prepareMocks:  func(m *mocks.StaffBackend) {},
			expectedError: service.ErrInvalidPaymentStatus,
		},
		{
			name:    "backend refuses",
			current: shop.StatusReceived,
			update:  domain.StatusUpdate{OrderStatus: shop.StatusCancelled},
			prepareMocks: func(m *mocks.StaffBackend) {
				m.On("UpdateOrderStatus", mock.Anything, "ORD-000001", shop.StatusCancelled, shop.PaymentStatus("")).
					Return(&sheets.BackendError{Message: "Order not found"}).Once()
			},
			expectedError: &sheets.BackendError{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			svc, backend, repo := newStaffService(t)
			require.NoError(t, repo.SaveOrders(ctx, []shop.Order{order("ORD-000001", testCase.current, boardNow, 0)}))
			testCase.prepareMocks(backend)

			updated, err := svc.UpdateStatus(ctx, "ORD-000001", testCase.update)

			if testCase.expectedError != nil {
				var backendErr *sheets.BackendError
				if _, isBackend := testCase.expectedError.(*sheets.BackendError); isBackend {
					assert.ErrorAs(t, err, &backendErr)
				} else {
					assert.ErrorIs(t, err, testCase.expectedError)
				}
				cached, _, _ := repo.LoadOrders(ctx)
				assert.Equal(t, testCase.current, cached[0].OrderStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.update.OrderStatus, updated.OrderStatus)
			cached, _, err := repo.LoadOrders(ctx)
			require.NoError(t, err)
			assert.Equal(t, testCase.update.OrderStatus, cached[0].OrderStatus)
		})
	}
}

func TestStaffService_UpdateStatusUnknownOrder(t *testing.T) {
	svc, backend, _ := newStaffService(t)
	backend.On("GetOrders", mock.Anything).Return([]shop.Order{}, nil).Once()

	_, err := svc.UpdateStatus(context.Background(), "ORD-404404", domain.StatusUpdate{OrderStatus: shop.StatusInProgress})
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestStaffService_Advance(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newStaffService(t)
	require.NoError(t, repo.SaveOrders(ctx, []shop.Order{order("ORD-000001", shop.StatusInProgress, boardNow, 0)}))

	backend.On("UpdateOrderStatus", mock.Anything, "ORD-000001", shop.StatusCompleted, shop.PaymentPaid).Return(nil).Once()

	updated, err := svc.Advance(ctx, "ORD-000001")
	require.NoError(t, err)
	assert.Equal(t, shop.StatusCompleted, updated.OrderStatus)
	assert.Equal(t, shop.PaymentPaid, updated.PaymentStatus)

	_, err = svc.Advance(ctx, "ORD-000001")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestStaffService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newStaffService(t)

	backend.On("GetOrders", mock.Anything).Return([]shop.Order{
		order("ORD-000001", shop.StatusCompleted, boardNow.Add(-time.Hour), 45000),
	}, nil).Once()
	backend.On("GetTransactions", mock.Anything).Return(nil, sheets.ErrUnavailable).Once()
	require.NoError(t, repo.SaveTransactions(ctx, []shop.Transaction{
		{ID: "TC-1", Type: shop.TransactionExpense, Category: "Điện", Amount: 15000, Timestamp: shop.FormatTimestamp(boardNow.Add(-2 * time.Hour))},
	}))

	dash, err := svc.Dashboard(ctx, domain.RangeDay)
	require.NoError(t, err)
	assert.Equal(t, shop.VND(45000), dash.Revenue)
	assert.Equal(t, shop.VND(15000), dash.Cost)
	assert.Equal(t, shop.VND(30000), dash.Profit)
	assert.True(t, dash.Stale)
}

func TestStaffService_Transactions(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := newStaffService(t)

	expectedTx := shop.Transaction{
		ID:        shop.NewTransactionID(boardNow),
		Type:      shop.TransactionExpense,
		Category:  "Nguyên liệu",
		Amount:    120000,
		Note:      "sữa",
		Timestamp: shop.FormatTimestamp(boardNow),
	}
	backend.On("CreateTransaction", mock.Anything, expectedTx).Return(nil).Once()

	tx, err := svc.CreateTransaction(ctx, domain.TransactionRequest{
		Type: shop.TransactionExpense, Category: " Nguyên liệu ", Amount: 120000, Note: "sữa ",
	})
	require.NoError(t, err)
	assert.Equal(t, expectedTx, *tx)

	_, err = svc.CreateTransaction(ctx, domain.TransactionRequest{Type: "Vay", Amount: 1})
	assert.ErrorIs(t, err, service.ErrInvalidTransaction)
	_, err = svc.CreateTransaction(ctx, domain.TransactionRequest{Type: shop.TransactionIncome})
	assert.ErrorIs(t, err, service.ErrInvalidAmount)

	older := shop.Transaction{ID: "TC-1", Type: shop.TransactionIncome, Amount: 5000, Timestamp: shop.FormatTimestamp(boardNow.Add(-time.Hour))}
	backend.On("GetTransactions", mock.Anything).Return([]shop.Transaction{older, expectedTx}, nil).Twice()

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, expectedTx.ID, txs[0].ID)

	require.NoError(t, svc.DeleteTransaction(ctx, "TC-1"))
	assert.ErrorIs(t, svc.DeleteTransaction(ctx, "TC-1"), service.ErrTransactionNotFound)

	txs, err = svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestStaffService_CreateIntake(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newStaffService(t)

	var seeded []shop.InventoryIntake
	for i := 0; i < domain.IntakeLogSize; i++ {
		seeded = append(seeded, shop.InventoryIntake{ID: "old", MaterialCode: "NL01"})
	}
	require.NoError(t, repo.SaveIntakes(ctx, seeded))

	backend.On("CreateIntake", mock.Anything, mock.MatchedBy(func(in shop.InventoryIntake) bool {
		return in.MaterialCode == "NL15" && in.MaterialName == "Đá viên" && in.Quantity == 10 && in.UnitPrice == 8000
	})).Return(nil).Once()

	intake, err := svc.CreateIntake(ctx, domain.IntakeRequest{MaterialCode: "NL15", Quantity: 10, UnitPrice: 8000})
	require.NoError(t, err)
	assert.Regexp(t, `^NK-\d{6}$`, intake.ID)

	logs, err := svc.Intakes(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, domain.IntakeLogSize)
	assert.Equal(t, intake.ID, logs[0].ID)

	_, err = svc.CreateIntake(ctx, domain.IntakeRequest{MaterialCode: "NL99", Quantity: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, service.ErrUnknownMaterial)
	_, err = svc.CreateIntake(ctx, domain.IntakeRequest{MaterialCode: "NL01", Quantity: 0, UnitPrice: 1})
	assert.ErrorIs(t, err, service.ErrInvalidAmount)
}

func TestStaffService_TopDrinks(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewStaffBackend(t)
	popularity := mocks.NewPopularityReader(t)
	svc := service.NewStaffService(backend, storage.NewKVRepository(kvstore.NewMemoryStore()), popularity)
	svc.SetClock(func() time.Time { return boardNow })

	popularity.On("TopDaily", mock.Anything, boardNow, 5).Return([]domain.DrinkScore{{Name: "Trà Đào", Cups: 12}}, nil).Once()
	popularity.On("TopAllTime", mock.Anything, 3).Return([]domain.DrinkScore{{Name: "Cà phê sữa", Cups: 300}}, nil).Once()

	today, err := svc.TopDrinks(ctx, service.ScopeToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "Trà Đào", today[0].Name)

	allTime, err := svc.TopDrinks(ctx, service.ScopeAllTime, 3)
	require.NoError(t, err)
	assert.Equal(t, 300.0, allTime[0].Cups)

	noRedis, _, _ := newStaffService(t)
	drinks, err := noRedis.TopDrinks(ctx, service.ScopeToday, 5)
	require.NoError(t, err)
	assert.Empty(t, drinks)
}
