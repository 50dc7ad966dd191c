package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-service/internal/cart"
	"storefront-service/internal/clients"
	"storefront-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Address1: "12 Analytical Way",
		City:     "London",
		State:    "LDN",
		Zip:      "SW1",
	}
}

func newTestService(t *testing.T, endpoint string) (*Service, *cart.Store) {
	t.Helper()
	store := cart.NewStore(cart.NewMemoryKV(), 0.07, testLogger())
	service := NewService(store, clients.NewMailClient(endpoint), nil, testLogger())
	return service, store
}

func fillCart(store *cart.Store) {
	ctx := context.Background()
	store.Add(ctx, models.Product{ID: "a", Title: "Alpha", Price: 10}, 2)
	store.Add(ctx, models.Product{ID: "b", Title: "Beta", Price: 5}, 1)
}

func TestSnapshot(t *testing.T) {
	service, store := newTestService(t, "")
	fillCart(store)

	snap := service.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, 25.00, snap.Subtotal)
	assert.Equal(t, 1.75, snap.Tax)
	assert.Equal(t, 26.75, snap.Total)
	assert.Equal(t, 20.00, snap.Items[0].LineTotal)
}

func TestSnapshotEmptyCart(t *testing.T) {
	service, _ := newTestService(t, "")
	snap := service.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.ItemCount)
}

func TestPlaceOrderSuccessClearsCart(t *testing.T) {
	var received clients.OrderSubmission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service, store := newTestService(t, server.URL)
	fillCart(store)

	orderID, snap, err := service.PlaceOrder(context.Background(), testCustomer())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(orderID, "ORD-"))
	assert.Len(t, orderID, len("ORD-")+8)
	assert.Equal(t, 0, store.Count(), "cart is cleared on success")

	assert.Equal(t, orderID, received.OrderID)
	assert.Equal(t, "Ada Lovelace", received.Name)
	assert.Len(t, received.Items, 2)
	assert.Equal(t, snap.Subtotal, received.Subtotal)
	assert.Equal(t, snap.Tax, received.Tax)
	assert.Equal(t, snap.Total, received.Total)
	assert.Contains(t, received.Message, orderID)
	assert.Contains(t, received.Message, "Shipping: Free")
}

func TestPlaceOrderFailurePreservesCart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service, store := newTestService(t, server.URL)
	fillCart(store)

	_, _, err := service.PlaceOrder(context.Background(), testCustomer())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmission)
	assert.Equal(t, 3, store.Count(), "cart is preserved so the shopper can retry")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	service, _ := newTestService(t, "http://unused.invalid")
	_, _, err := service.PlaceOrder(context.Background(), testCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderValidation(t *testing.T) {
	service, store := newTestService(t, "http://unused.invalid")
	fillCart(store)

	customer := testCustomer()
	customer.Zip = "  "

	_, _, err := service.PlaceOrder(context.Background(), customer)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "zip", validationErr.Field)
	assert.Equal(t, 3, store.Count(), "nothing is sent and nothing is cleared")
}

func TestOrderAsText(t *testing.T) {
	snap := models.OrderSnapshot{
		Items:     []models.OrderItem{{ID: "a", Title: "Alpha", Price: 10, Quantity: 2, LineTotal: 20}},
		Subtotal:  20,
		Tax:       1.40,
		Total:     21.40,
		ItemCount: 2,
	}
	customer := testCustomer()
	customer.Address2 = "Flat 3"
	customer.Notes = "Leave at door"

	text := orderAsText("ORD-TEST0001", customer, snap)
	assert.Contains(t, text, "Order: ORD-TEST0001")
	assert.Contains(t, text, "Address: 12 Analytical Way, Flat 3, London, LDN SW1")
	assert.Contains(t, text, "Notes: Leave at door")
	assert.Contains(t, text, "Items (2):")
	assert.Contains(t, text, "Alpha x2")
	assert.Contains(t, text, "Total: $21.40")
}
