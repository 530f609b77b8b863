package service

import (
	"context"

	"roastery/internal/model"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
)

// ProductService defines catalogue operations for both the public
// storefront and the admin surface.
type ProductService interface {
	// ListActive retrieves active products for the public listing.
	ListActive(ctx context.Context) ([]model.Product, error)

	// GetActiveByID retrieves a single active product. Returns nil when
	// the product does not exist or is inactive.
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)

	// ListAll retrieves every product including inactive ones (admin).
	ListAll(ctx context.Context) ([]model.Product, error)

	// Create adds a new product. New products are active by default.
	Create(ctx context.Context, in *model.ProductInput) (*model.Product, error)

	// Update overwrites an existing product, including the is_active
	// soft-delete flag. Returns nil when the product does not exist.
	Update(ctx context.Context, id int64, in *model.ProductInput) (*model.Product, error)

	// Delete removes a product. Returns false when it does not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CheckoutService opens hosted payment sessions for validated carts.
type CheckoutService interface {
	// CreateSession validates the cart against the catalogue, recomputes
	// totals server-side and opens a Stripe checkout session. Returns the
	// URL the browser should be redirected to. No order is written here;
	// orders exist only after the webhook confirms payment.
	CreateSession(ctx context.Context, req *model.CheckoutRequest) (string, error)
}

// OrderService processes completed payment sessions and serves the
// admin order views.
type OrderService interface {
	// ProcessCompletedSession reconstructs and persists the order for a
	// completed checkout session. Returns created=false without error
	// when the session was already processed (duplicate delivery).
	ProcessCompletedSession(ctx context.Context, session *stripe.CheckoutSession) (order *model.Order, created bool, err error)

	// ListAll retrieves all orders with items, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// AuthService verifies admin credentials and issues bearer tokens.
type AuthService interface {
	// Login exchanges a username/password pair for a signed token.
	Login(ctx context.Context, username, password string) (string, error)
}

// ContactService stores and lists storefront contact messages.
type ContactService interface {
	// Submit validates and stores a contact message.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// ListAll retrieves all contact messages, newest first (admin).
	ListAll(ctx context.Context) ([]model.ContactMessage, error)
}
