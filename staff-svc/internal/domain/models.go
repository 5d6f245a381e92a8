package domain

import (
	"time"

	"tiemnuoc/pkg/shop"
)

const (
	SortTime   = "time"
	SortStatus = "status"

	// FilterAll disables the status filter.
	FilterAll = "All"

	PageSize = 20

	// NewOrderWindow is how long a received order counts as new.
	NewOrderWindow = 60 * time.Second

	// IntakeLogSize is how many intakes the local log keeps.
	IntakeLogSize = 50
)

const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

type OrderQuery struct {
	Sort   string
	Status string
	Page   int
}

type OrderPage struct {
	Orders     []shop.Order `json:"orders"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Total      int          `json:"total"`
	// NewOrderIDs lists orders that became new since the previous listing.
	NewOrderIDs []string `json:"newOrderIds"`
	Stale       bool     `json:"stale"`
}

type StatusUpdate struct {
	OrderStatus   shop.OrderStatus   `json:"orderStatus"`
	PaymentStatus shop.PaymentStatus `json:"paymentStatus,omitempty"`
}

type CategoryAmount struct {
	Name  string   `json:"name"`
	Value shop.VND `json:"value"`
}

type SeriesPoint struct {
	Name    string   `json:"name"`
	Revenue shop.VND `json:"revenue"`
}

type Dashboard struct {
	Range            string                   `json:"range"`
	Revenue          shop.VND                 `json:"revenue"`
	Cost             shop.VND                 `json:"cost"`
	Profit           shop.VND                 `json:"profit"`
	OrderCount       int                      `json:"orderCount"`
	Growth           float64                  `json:"growth"`
	CostGrowth       float64                  `json:"costGrowth"`
	ExpenseBreakdown []CategoryAmount         `json:"expenseData"`
	RevenueSeries    []SeriesPoint            `json:"revenueData"`
	StatusCounts     map[shop.OrderStatus]int `json:"statusCounts"`
	Stale            bool                     `json:"stale"`
}

type TransactionRequest struct {
	Type     shop.TransactionType `json:"phan_loai"`
	Category string               `json:"danh_muc"`
	Amount   shop.VND             `json:"so_tien"`
	Note     string               `json:"ghi_chu"`
}

type IntakeRequest struct {
	MaterialCode string   `json:"ma_nl"`
	Quantity     float64  `json:"so_luong_nhap"`
	UnitPrice    shop.VND `json:"don_gia_nhap"`
	Note         string   `json:"ghi_chu"`
}

type DrinkScore struct {
	Name string  `json:"name"`
	Cups float64 `json:"cups"`
}
