package shopapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abod-card-app/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestCategoriesMapsWireShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":            "cat-1",
				"product_id":    "prod-1",
				"name":          "Gold Package",
				"description":   "1000 coins",
				"price":         12.50,
				"delivery_type": "email",
			},
			{
				"id":            "cat-2",
				"product_id":    "prod-1",
				"name":          "Silver Package",
				"price":         5.00,
				"delivery_type": "teleport", // unknown on the wire
			},
		})
	}))

	variants, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, variants, 2)

	assert.Equal(t, "cat-1", variants[0].ID)
	assert.Equal(t, model.CentsFromDollars(12.50), variants[0].Price)
	assert.Equal(t, model.DeliveryEmail, variants[0].Delivery)

	// unknown mechanisms degrade to plain code delivery
	assert.Equal(t, model.DeliveryCode, variants[1].Delivery)
}

func TestProductsNonOKStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Products(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestPurchaseSuccess(t *testing.T) {
	var got PurchaseRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/purchase", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        true,
			"order_type":     "pending",
			"estimated_time": "1-2 hours",
		})
	}))

	result, err := client.Purchase(context.Background(), PurchaseRequest{
		UserTelegramID: 42,
		CategoryID:     "cat-1",
		DeliveryType:   model.DeliveryEmail,
		AdditionalInfo: map[string]string{"email": "a@b.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", result.OrderType)
	assert.Equal(t, "1-2 hours", result.EstimatedTime)

	assert.Equal(t, int64(42), got.UserTelegramID)
	assert.Equal(t, map[string]string{"email": "a@b.com"}, got.AdditionalInfo)
}

func TestPurchaseRejectionPrefersDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"detail":  "insufficient balance",
			"message": "ignored",
		})
	}))

	_, err := client.Purchase(context.Background(), PurchaseRequest{UserTelegramID: 42, CategoryID: "cat-1"})
	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "insufficient balance", rej.Reason)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestPurchaseSuccessFalseIsRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "category unavailable",
		})
	}))

	_, err := client.Purchase(context.Background(), PurchaseRequest{UserTelegramID: 42, CategoryID: "cat-1"})
	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "category unavailable", rej.Reason)
}

func TestPurchaseMalformedFailureBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := client.Purchase(context.Background(), PurchaseRequest{UserTelegramID: 42, CategoryID: "cat-1"})
	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Empty(t, rej.Reason)
}

func TestUsersAndOrders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"telegram_id": 42, "first_name": "Ali", "balance": 15.0, "orders_count": 3},
			})
		case "/orders":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": "ord-1", "telegram_id": 42, "product_name": "Gold Package", "price": 10.0, "status": "completed"},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	users, err := client.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(42), users[0].TelegramID)
	assert.Equal(t, 15.0, users[0].Balance)

	orders, err := client.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
	assert.True(t, orders[0].Completed())
}
