package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tiemnuoc/order-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MenuClient looks drinks up in menu-svc so prices are never taken from the
// customer's request.
type MenuClient struct {
	BaseURL string
	Client  HTTPClient
}

func NewMenuClient(baseURL string, client HTTPClient) *MenuClient {
	return &MenuClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (c *MenuClient) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/menu/items/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu-svc unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrMenuItemNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("menu-svc returned status %d", resp.StatusCode)
	}

	var item domain.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode menu item: %w", err)
	}
	return &item, nil
}
