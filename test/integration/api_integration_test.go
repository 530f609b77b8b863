package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"roastery/internal/auth"
	"roastery/internal/config"
	"roastery/internal/handler"
	"roastery/internal/model"
	"roastery/internal/repository"
	"roastery/internal/router"
	"roastery/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

const testSignature = "test-signature"

// stubPaymentClient stands in for Stripe. Checkout sessions get a canned
// URL and webhook verification accepts a fixed test signature, so the
// full webhook flow runs against a real database without network calls.
type stubPaymentClient struct {
	lastParams *stripe.CheckoutSessionParams
}

func (c *stubPaymentClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	c.lastParams = params
	return &stripe.CheckoutSession{
		ID:  "cs_test_stub",
		URL: "https://checkout.stripe.com/pay/cs_test_stub",
	}, nil
}

func (c *stubPaymentClient) SessionLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	return nil, nil
}

func (c *stubPaymentClient) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	if signatureHeader != testSignature {
		return stripe.Event{}, errors.New("signature mismatch")
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, err
	}
	return event, nil
}

func setupTestServer(t *testing.T, testDB *TestDB) (http.Handler, *stubPaymentClient) {
	t.Helper()

	logger := zerolog.Nop()

	frontend := config.FrontendConfig{
		BaseURL:    "http://localhost:3000",
		SuccessURL: "http://localhost:3000/?checkout=success",
		CancelURL:  "http://localhost:3000/cart",
	}
	issuer := auth.NewTokenIssuer(config.JWTConfig{
		Key:           "integration-test-key-integration",
		Issuer:        "roastery",
		Audience:      "roastery-admin",
		ExpiryMinutes: 5,
	})
	payments := &stubPaymentClient{}

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	adminRepo := repository.NewAdminUserRepository(testDB.Pool, logger)
	contactRepo := repository.NewContactRepository(testDB.Pool, logger)

	productService := service.NewProductService(productRepo, logger)
	checkoutService := service.NewCheckoutService(productRepo, payments, frontend, logger)
	orderService := service.NewOrderService(orderRepo, payments, logger)
	authService := service.NewAuthService(adminRepo, issuer, logger)
	contactService := service.NewContactService(contactRepo, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	webhookHandler := handler.NewWebhookHandler(orderService, payments, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	adminHandler := handler.NewAdminHandler(authService, productService, orderService, contactService, logger)

	return router.New(
		productHandler,
		checkoutHandler,
		webhookHandler,
		contactHandler,
		adminHandler,
		issuer,
		frontend.BaseURL,
		logger,
	), payments
}

// completedSessionPayload builds the webhook body for a completed
// checkout session carrying the cart snapshot in metadata.
func completedSessionPayload(t *testing.T, sessionID, cartItems string) []byte {
	t.Helper()

	object, err := json.Marshal(map[string]interface{}{
		"id": sessionID,
		"customer_details": map[string]string{
			"name":  "Jess Doe",
			"email": "jess@example.com",
		},
		"metadata": map[string]string{
			"cartItems":    cartItems,
			"customerName": "Jess Doe",
		},
	})
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt_" + sessionID,
		"type": "checkout.session.completed",
		"data": map[string]json.RawMessage{"object": object},
	})
	require.NoError(t, err)
	return payload
}

func loginAsAdmin(t *testing.T, server http.Handler) string {
	t.Helper()

	body := `{"username":"admin","password":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Token
}

func TestStorefrontAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server, payments := setupTestServer(t, testDB)

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GET /api/products lists only active products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 3)
	})

	t.Run("GET /api/products/{id} hides inactive products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/4", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /api/checkout prices the cart from the database", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		body := `{
			"customerName": "Jess Doe",
			"email": "jess@example.com",
			"items": [{"productId": 1, "bagSize": "12oz", "quantity": 2}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.CheckoutResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_stub", resp.CheckoutURL)

		require.NotNil(t, payments.lastParams)
		require.Len(t, payments.lastParams.LineItems, 1)
		assert.Equal(t, int64(1800), *payments.lastParams.LineItems[0].PriceData.UnitAmount)
		assert.Equal(t, "1|12oz|2|18.00|Ethiopia Yirgacheffe", payments.lastParams.Metadata["cartItems"])
	})

	t.Run("POST /api/checkout rejects a cart with an inactive product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		body := `{
			"email": "jess@example.com",
			"items": [{"productId": 4, "bagSize": "12oz", "quantity": 1}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/contact stores the message", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := `{"name":"Jess","email":"jess@example.com","message":"Do you ship abroad?"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var count int
		require.NoError(t, testDB.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM contact_messages").Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestWebhookAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server, _ := setupTestServer(t, testDB)

	t.Run("completed session creates exactly one order across retries", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)
		SeedAdmin(t, testDB.Pool, "admin", "admin")

		payload := completedSessionPayload(t, "cs_int_1", "1|12oz|2|18.00|Ethiopia Yirgacheffe")

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBuffer(payload))
			req.Header.Set("Stripe-Signature", testSignature)
			w := httptest.NewRecorder()

			server.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
		}

		token := loginAsAdmin(t, server)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var orders []model.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
		require.Len(t, orders, 1)
		assert.Equal(t, 36.00, orders[0].TotalAmount)
		assert.Equal(t, "Jess Doe", orders[0].CustomerName)
		assert.Equal(t, model.OrderStatusPaid, orders[0].Status)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "Ethiopia Yirgacheffe", orders[0].Items[0].ProductName)
	})

	t.Run("bad signature never reaches the database", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		payload := completedSessionPayload(t, "cs_int_2", "1|12oz|1|18.00|Ethiopia Yirgacheffe")
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBuffer(payload))
		req.Header.Set("Stripe-Signature", "t=1,v1=forged")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var count int
		require.NoError(t, testDB.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM orders").Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestAdminAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server, _ := setupTestServer(t, testDB)

	t.Run("admin routes reject missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("product lifecycle through the admin surface", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)
		SeedAdmin(t, testDB.Pool, "admin", "admin")

		token := loginAsAdmin(t, server)

		// Create a product.
		body := `{
			"name": "Kenya AA",
			"origin": "Nyeri, Kenya",
			"roastLevel": "Light",
			"price12oz": 19.5,
			"price2lb": 52.0
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.True(t, created.IsActive)

		// It appears on the public storefront.
		req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 4)

		// Deactivate it.
		update := `{
			"name": "Kenya AA",
			"origin": "Nyeri, Kenya",
			"roastLevel": "Light",
			"price12oz": 19.5,
			"price2lb": 52.0,
			"isActive": false
		}`
		req = httptest.NewRequest(http.MethodPut, "/api/admin/products/"+itoa(created.ID), bytes.NewBufferString(update))
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()

		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// Gone from the storefront, still visible to admins.
		req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 3)

		req = httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 5)

		// Delete it.
		req = httptest.NewRequest(http.MethodDelete, "/api/admin/products/"+itoa(created.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()

		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("admin reads contact messages", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedAdmin(t, testDB.Pool, "admin", "admin")

		body := `{"name":"Jess","email":"jess@example.com","message":"Wholesale pricing?"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		token := loginAsAdmin(t, server)
		req = httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()

		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var messages []model.ContactMessage
		require.NoError(t, json.NewDecoder(w.Body).Decode(&messages))
		require.Len(t, messages, 1)
		assert.Equal(t, "Wholesale pricing?", messages[0].Message)
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
