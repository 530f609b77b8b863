package repository

import (
	"context"

	"roastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// ListActive retrieves active products ordered by name. Used by the
	// public storefront listing.
	ListActive(ctx context.Context) ([]model.Product, error)

	// GetActiveByID retrieves a single active product. Returns nil when
	// the product does not exist or is inactive.
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)

	// GetActiveByIDs retrieves active products matching the given IDs,
	// keyed by ID. Checkout uses the result size to detect unavailable
	// products atomically.
	GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)

	// ListAll retrieves every product including inactive ones (admin view).
	ListAll(ctx context.Context) ([]model.Product, error)

	// Create inserts a new product and fills its ID and CreatedAt.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites an existing product. Returns false when the
	// product does not exist. Last write wins.
	Update(ctx context.Context, p *model.Product) (bool, error)

	// Delete removes a product. Returns false when it does not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// OrderRepository defines the interface for order data access. Orders are
// written exactly once by the webhook and are never updated afterwards.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	// Returns false without error when an order with the same Stripe
	// session ID already exists (duplicate webhook delivery).
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (bool, error)

	// CreateOrderItems inserts order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ListAll retrieves all orders with their items, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// AdminUserRepository defines lookup of the shared admin identity.
type AdminUserRepository interface {
	// GetByUsername returns nil when no such user exists.
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

// ContactRepository defines the interface for contact-message storage.
type ContactRepository interface {
	// Create inserts a new contact message and fills its ID and CreatedAt.
	Create(ctx context.Context, msg *model.ContactMessage) error

	// ListAll retrieves all contact messages, newest first.
	ListAll(ctx context.Context) ([]model.ContactMessage, error)
}
