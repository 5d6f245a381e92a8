package shop

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "Thu"
	TransactionExpense TransactionType = "Chi"
)

var TransactionCategories = []string{
	"Nguyên liệu", "Bao bì & Dụng cụ", "Điện", "Nước", "Wifi", "Rác",
	"Mặt bằng", "Nhân viên", "Vận chuyển", "Phí nền tảng", "Sửa chữa & Bảo trì",
	"Trang thiết bị", "Marketing & In ấn", "Thu bán hàng", "Thanh lý", "Thu khác", "Khác",
}

// Transaction is one row of the income/expense sheet. JSON names are the
// spreadsheet's column headers.
type Transaction struct {
	ID        string          `json:"id_thu_chi"`
	Type      TransactionType `json:"phan_loai"`
	Category  string          `json:"danh_muc"`
	Amount    VND             `json:"so_tien"`
	Note      string          `json:"ghi_chu"`
	Timestamp string          `json:"thoi_gian,omitempty"`
}

func (t Transaction) RecordedAt() time.Time {
	return Order{Timestamp: t.Timestamp}.PlacedAt()
}

func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("TC-%d", now.UnixMilli())
}

type Material struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var Materials = []Material{
	{Code: "NL01", Name: "Trà đen"},
	{Code: "NL02", Name: "Trà xanh"},
	{Code: "NL03", Name: "Sữa tươi"},
	{Code: "NL04", Name: "Bột béo"},
	{Code: "NL05", Name: "Trân châu đen"},
	{Code: "NL06", Name: "Trân châu trắng"},
	{Code: "NL07", Name: "Đường nước"},
	{Code: "NL08", Name: "Siro dâu"},
	{Code: "NL09", Name: "Siro đào"},
	{Code: "NL10", Name: "Thạch trái cây"},
	{Code: "NL11", Name: "Cà phê hạt"},
	{Code: "NL12", Name: "Kem béo"},
	{Code: "NL13", Name: "Bột cacao"},
	{Code: "NL14", Name: "Bột matcha"},
	{Code: "NL15", Name: "Đá viên"},
}

func MaterialByCode(code string) (Material, bool) {
	for _, m := range Materials {
		if m.Code == code {
			return m, true
		}
	}
	return Material{}, false
}

// InventoryIntake is one stock purchase ("nhập kho").
type InventoryIntake struct {
	ID           string  `json:"id_nhap"`
	MaterialCode string  `json:"ma_nl"`
	MaterialName string  `json:"materialName,omitempty"`
	Quantity     float64 `json:"so_luong_nhap"`
	UnitPrice    VND     `json:"don_gia_nhap"`
	Note         string  `json:"ghi_chu"`
	Timestamp    string  `json:"timestamp,omitempty"`
}

func NewIntakeID(now time.Time) string {
	return fmt.Sprintf("NK-%06d", now.UnixMilli()%1_000_000)
}
