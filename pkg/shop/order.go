// Package shop holds the order model shared by the order, staff and aggregation
// services and by the Sheets client.
package shop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Tiền mặt"
	PaymentTransfer PaymentMethod = "Chuyển khoản"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Chưa thanh toán"
	PaymentPaid   PaymentStatus = "Đã thanh toán"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

// groupedAmount matches thousands-grouped strings such as "45.000" or "1,200,000".
var groupedAmount = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)

// VND is an integer amount of dong. The spreadsheet sometimes hands numbers
// back as strings or floats, so decoding accepts both.
type VND int64

func (v *VND) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.NewReplacer("đ", "", "₫", "", " ", "").Replace(strings.TrimSpace(s))
		if s == "" {
			*v = 0
			return nil
		}
		if groupedAmount.MatchString(s) {
			s = strings.NewReplacer(".", "", ",", "").Replace(s)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid VND amount %q", s)
		}
		*v = VND(math.Round(f))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = VND(math.Round(f))
	return nil
}

type CartLine struct {
	CartLineID  string   `json:"cartItemId"`
	MenuItemID  string   `json:"id"`
	Name        string   `json:"name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   VND      `json:"unitPrice"`
	Size        string   `json:"size"`
	Toppings    []string `json:"toppings"`
	Temperature string   `json:"temperature,omitempty"`
	SugarLevel  string   `json:"sugarLevel,omitempty"`
	IceLevel    string   `json:"iceLevel,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Subtotal is unitPrice × quantity.
func (l CartLine) Subtotal() VND {
	return l.UnitPrice * VND(l.Quantity)
}

type Order struct {
	OrderID       string        `json:"orderId"`
	CustomerName  string        `json:"customerName"`
	TableNumber   string        `json:"tableNumber"`
	Items         []CartLine    `json:"items"`
	Total         VND           `json:"total"`
	Timestamp     string        `json:"timestamp"`
	Notes         string        `json:"notes,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// PlacedAt parses Timestamp; the zero time is returned when it is not ISO-8601.
func (o Order) PlacedAt() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if t, err := time.Parse(layout, o.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NewOrderID builds "ORD-" followed by the last six digits of the unix
// millisecond timestamp.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%06d", now.UnixMilli()%1_000_000)
}

// FormatTimestamp renders t the way the backend stores order timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
