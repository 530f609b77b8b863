package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery/internal/model"
	"roastery/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles the JWT-gated admin surface: login, product
// management, order views and contact messages.
type AdminHandler struct {
	auth     service.AuthService
	products service.ProductService
	orders   service.OrderService
	contacts service.ContactService
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	auth service.AuthService,
	products service.ProductService,
	orders service.OrderService,
	contacts service.ContactService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		auth:     auth,
		products: products,
		orders:   orders,
		contacts: contacts,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// Login handles POST /api/admin/login requests. This is the only admin
// route that is not behind the bearer-token middleware.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token})
}

// ListProducts handles GET /api/admin/products requests. Inactive
// products are included.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	products, err := h.products.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/admin/products requests.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var in model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.products.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{id} requests.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/api/admin/products/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var in model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.products.Update(r.Context(), id, &in)
	if err != nil {
		writeServiceError(w, err, "failed to update product", h.logger)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id} requests.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/api/admin/products/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	deleted, err := h.products.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete product", h.logger)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders requests.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/admin/orders/{id} requests.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := r.URL.Path
	prefix := "/api/admin/orders/"
	if len(path) <= len(prefix) {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	orderID, err := uuid.Parse(path[len(prefix):])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListMessages handles GET /api/admin/messages requests.
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	messages, err := h.contacts.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve messages", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
