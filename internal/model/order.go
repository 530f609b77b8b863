package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusPaid is the status set on orders created by the webhook.
// Orders are never created in any other state in this system.
const OrderStatusPaid = "Paid"

// Order represents a completed, paid customer order.
type Order struct {
	ID                    uuid.UUID   `json:"id" db:"id"`
	CustomerName          string      `json:"customerName" db:"customer_name"`
	Email                 string      `json:"email" db:"email"`
	TotalAmount           float64     `json:"totalAmount" db:"total_amount"`
	StripeSessionID       string      `json:"stripeSessionId" db:"stripe_session_id"`
	StripePaymentIntentID string      `json:"stripePaymentIntentId" db:"stripe_payment_intent_id"`
	Status                string      `json:"status" db:"status"`
	CreatedAt             time.Time   `json:"createdAt" db:"created_at"`
	Items                 []OrderItem `json:"items" db:"-"`
}

// OrderItem is a line item in an order. ProductName and UnitPrice are
// captured at purchase time so historical orders stay accurate when
// catalogue prices change. ProductID is zero when the order was
// reconstructed from the Stripe line-item fallback.
type OrderItem struct {
	ID          uuid.UUID `json:"-" db:"id"`
	OrderID     uuid.UUID `json:"-" db:"order_id"`
	ProductID   int64     `json:"productId" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	BagSize     string    `json:"bagSize" db:"bag_size"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unitPrice" db:"unit_price"`
}
