package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roastery/internal/cart"
	"roastery/internal/model"
	"roastery/internal/payment"
	"roastery/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	payments  payment.Client
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	payments payment.Client,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		payments:  payments,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ProcessCompletedSession reconstructs the order from the session's cart
// metadata (or the Stripe line-item fallback) and persists it atomically.
// The unique session ID constraint makes redelivered events a no-op.
func (s *orderService) ProcessCompletedSession(ctx context.Context, session *stripe.CheckoutSession) (*model.Order, bool, error) {
	if session == nil || session.ID == "" {
		return nil, false, fmt.Errorf("completed event carries no session")
	}

	order := &model.Order{
		ID:              uuid.New(),
		CustomerName:    "Unknown",
		StripeSessionID: session.ID,
		Status:          model.OrderStatusPaid,
		CreatedAt:       time.Now().UTC(),
	}
	if session.CustomerDetails != nil {
		if session.CustomerDetails.Name != "" {
			order.CustomerName = session.CustomerDetails.Name
		}
		order.Email = session.CustomerDetails.Email
	}
	if session.PaymentIntent != nil {
		order.StripePaymentIntentID = session.PaymentIntent.ID
	}

	items, err := s.reconstructItems(ctx, session)
	if err != nil {
		return nil, false, err
	}

	var total float64
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
		total += items[i].UnitPrice * float64(items[i].Quantity)
	}
	order.TotalAmount = total
	order.Items = items

	// The metadata-carried name is more authoritative than the identity
	// Stripe captured on the payment page.
	if name := session.Metadata["customerName"]; name != "" {
		order.CustomerName = name
	}

	created, err := s.persistOrder(ctx, order)
	if err != nil {
		return nil, false, err
	}
	if !created {
		s.logger.Info().
			Str("stripe_session_id", session.ID).
			Msg("session already processed, ignoring duplicate delivery")
		return nil, false, nil
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("stripe_session_id", session.ID).
		Float64("total", order.TotalAmount).
		Int("item_count", len(order.Items)).
		Msg("order created from completed session")

	return order, true, nil
}

// reconstructItems decodes the cart-items token from session metadata.
// When the token is missing or unreadable it falls back to the session's
// Stripe line items; that path loses the product linkage and guesses the
// bag size from the item description.
func (s *orderService) reconstructItems(ctx context.Context, session *stripe.CheckoutSession) ([]model.OrderItem, error) {
	if token, ok := session.Metadata["cartItems"]; ok {
		lines, err := cart.Decode(token)
		if err == nil {
			items := make([]model.OrderItem, len(lines))
			for i, l := range lines {
				items[i] = model.OrderItem{
					ProductID:   l.ProductID,
					ProductName: l.ProductName,
					BagSize:     l.BagSize,
					Quantity:    l.Quantity,
					UnitPrice:   l.UnitPrice,
				}
			}
			return items, nil
		}
		s.logger.Warn().
			Err(err).
			Str("stripe_session_id", session.ID).
			Msg("cart token undecodable, falling back to line items")
	} else {
		s.logger.Warn().
			Str("stripe_session_id", session.ID).
			Msg("session has no cart metadata, falling back to line items")
	}

	return s.itemsFromLineItems(ctx, session.ID)
}

// itemsFromLineItems is the reconciliation fallback: best-effort item
// reconstruction from the provider's line-item list.
func (s *orderService) itemsFromLineItems(ctx context.Context, sessionID string) ([]model.OrderItem, error) {
	lineItems, err := s.payments.SessionLineItems(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order items: %w", err)
	}

	items := make([]model.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		var unitPrice float64
		if li.Price != nil {
			unitPrice = float64(li.Price.UnitAmount) / 100
		}

		quantity := int(li.Quantity)
		if quantity < 1 {
			quantity = 1
		}

		name := li.Description
		if name == "" {
			name = "Unknown Product"
		}

		// Bag size is only recoverable from the display name here.
		bagSize := model.BagSize2lb
		if strings.Contains(li.Description, model.BagSize12oz) {
			bagSize = model.BagSize12oz
		}

		items = append(items, model.OrderItem{
			ProductID:   0, // unknown without metadata
			ProductName: name,
			BagSize:     bagSize,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}

	return items, nil
}

// persistOrder writes the order and its items in a single transaction.
func (s *orderService) persistOrder(ctx context.Context, order *model.Order) (created bool, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	inserted, err := s.orderRepo.CreateOrder(ctx, tx, order)
	if err != nil {
		return false, fmt.Errorf("failed to create order: %w", err)
	}

	if !inserted {
		// Duplicate delivery: nothing to write, release the transaction.
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return false, nil
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return false, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to create order: %w", err)
	}

	return true, nil
}

// ListAll retrieves all orders with their items, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order by its ID with all its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
