// Package sheets talks to the spreadsheet-backed Apps Script endpoint that is the
// shop's backend of record. Reads are GET ?action=...; writes are POSTs whose JSON
// body carries the action and is sent as text/plain so the endpoint accepts it
// without a CORS preflight.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tiemnuoc/pkg/shop"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnavailable covers transport failures and non-2xx responses.
	ErrUnavailable = errors.New("sheets backend unavailable")
	// ErrMalformedResponse is returned when a body cannot be decoded into the expected shape.
	ErrMalformedResponse = errors.New("sheets backend returned a malformed response")
	ErrNotConfigured     = errors.New("sheets backend url is not configured")
)

// BackendError is a business error reported by the backend itself. Message is
// shown to users verbatim.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "sheets backend rejected the request"
	}
	return e.Message
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL string
	client  HTTPClient
}

func New(baseURL string, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: baseURL, client: client}
}

// StatusReport is the getOrderStatus answer. PaymentStatus is empty when the
// backend did not send one.
type StatusReport struct {
	OrderStatus   shop.OrderStatus   `json:"orderStatus"`
	PaymentStatus shop.PaymentStatus `json:"paymentStatus"`
}

// ack is the POST reply: {status:"success"} or {status:"error", message}. Some
// actions answer {success:true} instead.
type ack struct {
	Status  string `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a ack) ok() bool {
	return a.Status == "success" || a.Success
}

// GetMenu returns the raw menu rows. Column names are whatever the sheet uses;
// the menu normalizer resolves them.
func (c *Client) GetMenu(ctx context.Context) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := c.get(ctx, url.Values{"action": {"getMenu"}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty menu", ErrMalformedResponse)
	}
	return rows, nil
}

func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*StatusReport, error) {
	var report StatusReport
	if err := c.get(ctx, url.Values{"action": {"getOrderStatus"}, "orderId": {orderID}}, &report); err != nil {
		return nil, err
	}
	if report.OrderStatus == "" {
		return nil, fmt.Errorf("%w: missing orderStatus", ErrMalformedResponse)
	}
	return &report, nil
}

// GetOrders decodes row by row; a row the sheet garbled is logged and skipped
// instead of hiding every other order.
func (c *Client) GetOrders(ctx context.Context) ([]shop.Order, error) {
	var rows []json.RawMessage
	if err := c.get(ctx, url.Values{"action": {"getOrders"}}, &rows); err != nil {
		return nil, err
	}
	orders := make([]shop.Order, 0, len(rows))
	for i, row := range rows {
		var o shop.Order
		if err := json.Unmarshal(row, &o); err != nil {
			log.Warn().Err(err).Int("row", i).Msg("skipping unreadable order row")
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (c *Client) GetTransactions(ctx context.Context) ([]shop.Transaction, error) {
	var rows []json.RawMessage
	if err := c.get(ctx, url.Values{"action": {"getTransactions"}}, &rows); err != nil {
		return nil, err
	}
	txs := make([]shop.Transaction, 0, len(rows))
	for i, row := range rows {
		var tx shop.Transaction
		if err := json.Unmarshal(row, &tx); err != nil {
			log.Warn().Err(err).Int("row", i).Msg("skipping unreadable transaction row")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// CreateOrder only fails on an explicit {status:"error"}; an unreadable reply
// still counts as accepted because the endpoint sometimes answers with an
// opaque redirect page after writing the row.
func (c *Client) CreateOrder(ctx context.Context, order shop.Order) error {
	payload := struct {
		Action string `json:"action"`
		shop.Order
	}{Action: "createOrder", Order: order}

	a, err := c.post(ctx, payload)
	if errors.Is(err, ErrMalformedResponse) {
		log.Warn().Str("order_id", order.OrderID).Msg("createOrder reply was not JSON, assuming success")
		return nil
	}
	if err != nil {
		return err
	}
	if a.Status == "error" {
		return &BackendError{Message: a.Message}
	}
	return nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.postAck(ctx, map[string]interface{}{
		"action":  "cancelOrder",
		"orderId": orderID,
	})
}

// UpdateOrderStatus leaves the payment status untouched when payment is empty.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status shop.OrderStatus, payment shop.PaymentStatus) error {
	body := map[string]interface{}{
		"action":      "updateOrderStatus",
		"orderId":     orderID,
		"orderStatus": status,
	}
	if payment != "" {
		body["paymentStatus"] = payment
	}
	return c.postAck(ctx, body)
}

func (c *Client) CreateTransaction(ctx context.Context, tx shop.Transaction) error {
	payload := struct {
		Action string `json:"action"`
		shop.Transaction
	}{Action: "createTransaction", Transaction: tx}
	return c.postAck(ctx, payload)
}

func (c *Client) CreateIntake(ctx context.Context, intake shop.InventoryIntake) error {
	return c.postAck(ctx, map[string]interface{}{
		"action":        "createNhapKho",
		"id_nhap":       intake.ID,
		"ma_nl":         intake.MaterialCode,
		"so_luong_nhap": intake.Quantity,
		"don_gia_nhap":  intake.UnitPrice,
		"ghi_chu":       intake.Note,
	})
}

func (c *Client) get(ctx context.Context, query url.Values, dst interface{}) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	q := u.Query()
	for k, v := range query {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	// GET actions report failures as {"error": "..."}.
	var failure struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
		return &BackendError{Message: failure.Error}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, query.Get("action"), err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload interface{}) (ack, error) {
	if c.baseURL == "" {
		return ack{}, ErrNotConfigured
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ack{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(raw))
	if err != nil {
		return ack{}, err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	body, err := c.do(req)
	if err != nil {
		return ack{}, err
	}

	var a ack
	if err := json.Unmarshal(body, &a); err != nil {
		return ack{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return a, nil
}

func (c *Client) postAck(ctx context.Context, payload interface{}) error {
	a, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if !a.ok() {
		return &BackendError{Message: a.Message}
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}
