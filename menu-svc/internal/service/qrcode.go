package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidTable = errors.New("table number is required")

type QRGenerator interface {
	Generate(table string) ([]byte, error)
	Link(table string) string
}

// TableQRGenerator encodes a link to the ordering page with the table
// number pre-filled.
type TableQRGenerator struct {
	BaseURL string
}

func (g TableQRGenerator) Link(table string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/?table=" + url.QueryEscape(table)
}

func (g TableQRGenerator) Generate(table string) ([]byte, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, ErrInvalidTable
	}
	return qrcode.Encode(g.Link(table), qrcode.Medium, 256)
}
