package router

import (
	"net/http"
	"strings"

	"roastery/internal/auth"
	"roastery/internal/handler"
	"roastery/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	checkoutHandler *handler.CheckoutHandler,
	webhookHandler *handler.WebhookHandler,
	contactHandler *handler.ContactHandler,
	adminHandler *handler.AdminHandler,
	issuer *auth.TokenIssuer,
	allowedOrigin string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public catalogue
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Checkout and payment confirmation
	mux.HandleFunc("/api/checkout", checkoutHandler.Create)
	mux.HandleFunc("/api/stripe/webhook", webhookHandler.Handle)

	// Contact form
	mux.HandleFunc("/api/contact", contactHandler.Create)

	// Admin surface; everything except login is gated by AdminAuth below.
	mux.HandleFunc("/api/admin/login", adminHandler.Login)

	adminProductRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/products" || r.URL.Path == "/api/admin/products/" {
			switch r.Method {
			case http.MethodGet:
				adminHandler.ListProducts(w, r)
			case http.MethodPost:
				adminHandler.CreateProduct(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch r.Method {
		case http.MethodPut:
			adminHandler.UpdateProduct(w, r)
		case http.MethodDelete:
			adminHandler.DeleteProduct(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/admin/products", adminProductRouteHandler)
	mux.HandleFunc("/api/admin/products/", adminProductRouteHandler)

	adminOrderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/admin/orders/") && r.URL.Path != "/api/admin/orders/" {
			adminHandler.GetOrder(w, r)
			return
		}
		adminHandler.ListOrders(w, r)
	}
	mux.HandleFunc("/api/admin/orders", adminOrderRouteHandler)
	mux.HandleFunc("/api/admin/orders/", adminOrderRouteHandler)

	mux.HandleFunc("/api/admin/messages", adminHandler.ListMessages)

	// Apply middleware in order: Recovery -> Logging -> CORS -> AdminAuth
	var h http.Handler = mux
	h = middleware.AdminAuth(issuer, logger)(h)
	h = middleware.CORS(allowedOrigin)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
