// Package shopapi is the HTTP client for the remote store backend. It covers
// the four read endpoints the storefront hydrates from plus the purchase
// submission endpoint.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"abod-card-app/internal/model"
)

// Client talks to the store backend REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config holds backend client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// User is a backend user record, used to hydrate balance and order count for
// platform buyers.
type User struct {
	TelegramID  int64   `json:"telegram_id"`
	FirstName   string  `json:"first_name"`
	Balance     float64 `json:"balance"`
	OrdersCount int     `json:"orders_count"`
	JoinDate    string  `json:"join_date"`
}

// variantDTO is the wire shape of a purchasable variant ("category").
type variantDTO struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DeliveryType string  `json:"delivery_type"`
}

// Products fetches the full product list.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories fetches all purchasable variants across products.
func (c *Client) Categories(ctx context.Context) ([]model.CatalogVariant, error) {
	var dtos []variantDTO
	if err := c.getJSON(ctx, "/categories", &dtos); err != nil {
		return nil, err
	}

	variants := make([]model.CatalogVariant, len(dtos))
	for i, d := range dtos {
		delivery := model.DeliveryMechanism(d.DeliveryType)
		if !delivery.Valid() {
			delivery = model.DeliveryCode
		}
		variants[i] = model.CatalogVariant{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Name:        d.Name,
			Description: d.Description,
			Price:       model.CentsFromDollars(d.Price),
			Delivery:    delivery,
		}
	}
	return variants, nil
}

// Users fetches all backend users. The backend exposes no per-user endpoint;
// callers filter by telegram id.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Orders fetches all orders. Callers filter by buyer id.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.getJSON(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PurchaseRequest is the body of POST /purchase.
type PurchaseRequest struct {
	UserTelegramID int64                   `json:"user_telegram_id"`
	CategoryID     string                  `json:"category_id"`
	DeliveryType   model.DeliveryMechanism `json:"delivery_type"`
	AdditionalInfo map[string]string       `json:"additional_info,omitempty"`
}

// PurchaseResult is the interpreted success payload of POST /purchase.
type PurchaseResult struct {
	// OrderType is "instant" or "pending".
	OrderType string
	// EstimatedTime is the backend's completion estimate for pending orders,
	// empty when the backend supplies none.
	EstimatedTime string
}

// purchaseResponse is the raw wire payload. Failure responses carry the
// reason in either "detail" (FastAPI convention) or "message".
type purchaseResponse struct {
	Success       bool   `json:"success"`
	OrderType     string `json:"order_type"`
	EstimatedTime string `json:"estimated_time"`
	Detail        string `json:"detail"`
	Message       string `json:"message"`
}

// Purchase submits one purchase request. Exactly one network call, no
// client-side retries. A non-2xx status or success=false yields a
// *RejectionError carrying the server-supplied reason when present; transport
// failures are returned as-is.
func (c *Client) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding purchase request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/purchase", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building purchase request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("purchase request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading purchase response: %w", err)
	}

	var payload purchaseResponse
	// A malformed body on a failure status is still a rejection; only insist
	// on valid JSON for 2xx responses.
	if err := json.Unmarshal(respBody, &payload); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decoding purchase response: %w", err)
		}
		return nil, &RejectionError{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !payload.Success {
		return nil, &RejectionError{Reason: payload.reason()}
	}

	return &PurchaseResult{
		OrderType:     payload.OrderType,
		EstimatedTime: payload.EstimatedTime,
	}, nil
}

func (p purchaseResponse) reason() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Message
}

// getJSON performs a GET against the backend and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
