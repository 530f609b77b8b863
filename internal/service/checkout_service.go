package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"roastery/internal/cart"
	"roastery/internal/config"
	"roastery/internal/model"
	"roastery/internal/payment"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	productRepo repository.ProductRepository
	payments    payment.Client
	frontend    config.FrontendConfig
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	productRepo repository.ProductRepository,
	payments payment.Client,
	frontend config.FrontendConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		productRepo: productRepo,
		payments:    payments,
		frontend:    frontend,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// CreateSession validates the cart and opens a Stripe checkout session.
// All validation happens before the payment call; a rejected cart never
// reaches Stripe.
func (s *checkoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest) (string, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return "", err
	}

	// Load only active products for the distinct IDs in the cart. A count
	// mismatch means something is deleted, deactivated or nonexistent;
	// the whole request fails, never a partial checkout.
	ids := distinctProductIDs(req.Items)
	products, err := s.productRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load products for checkout")
		return "", fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) != len(ids) {
		s.logger.Warn().
			Int("requested", len(ids)).
			Int("found", len(products)).
			Msg("checkout references unavailable products")
		return "", model.ErrProductUnavailable
	}

	lines, err := buildCartLines(req.Items, products)
	if err != nil {
		return "", err
	}

	token, err := cart.Encode(lines)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode cart token")
		return "", fmt.Errorf("failed to encode cart metadata: %w", err)
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		customerName = "Unknown"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          buildStripeLineItems(req.Items, products, s.frontend.BaseURL),
		CustomerEmail:      stripe.String(req.Email),
		SuccessURL:         stripe.String(s.frontend.SuccessURL),
		CancelURL:          stripe.String(s.frontend.CancelURL),
	}
	params.AddMetadata("cartItems", token)
	params.AddMetadata("customerName", customerName)

	session, err := s.payments.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("line_count", len(lines)).
		Float64("total", cart.Total(lines)).
		Msg("checkout session created")

	return session.URL, nil
}

// validateCheckoutRequest checks the request shape and each cart line
// before any database or payment call.
func validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	if strings.TrimSpace(req.Email) == "" {
		return model.ErrMissingEmail
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return model.NewDomainError(model.ErrCodeInvalidQuantity,
				fmt.Sprintf("Invalid quantity for product ID %d", item.ProductID))
		}
		if !model.ValidBagSize(item.BagSize) {
			return model.NewDomainError(model.ErrCodeInvalidBagSize,
				fmt.Sprintf("Invalid bag size %q. Valid sizes are %q and %q", item.BagSize, model.BagSize12oz, model.BagSize2lb))
		}
	}

	return nil
}

// buildCartLines resolves authoritative unit prices from the loaded
// catalogue records and produces the lines carried through session
// metadata. It is a pure function over its inputs.
func buildCartLines(items []model.CartItem, products map[int64]model.Product) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		product := products[item.ProductID]

		unitPrice := product.PriceFor(item.BagSize)
		if unitPrice <= 0 {
			// A zero or negative catalogue price is a misconfigured product.
			return nil, model.NewDomainError(model.ErrCodeInvalidPrice,
				fmt.Sprintf("Product %q has an invalid price for size %s", product.Name, item.BagSize))
		}

		lines = append(lines, cart.Line{
			ProductID:   product.ID,
			BagSize:     item.BagSize,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			ProductName: product.Name,
		})
	}
	return lines, nil
}

// buildStripeLineItems converts validated cart items into Stripe
// price-quoted line items. Amounts are in minor units; images are
// attached only when they resolve to an absolute URL.
func buildStripeLineItems(items []model.CartItem, products map[int64]model.Product, baseURL string) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		product := products[item.ProductID]
		unitPrice := product.PriceFor(item.BagSize)

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(fmt.Sprintf("%s (%s)", product.Name, item.BagSize)),
		}
		if img := resolveImageURL(product.ImageURL, baseURL); img != "" {
			productData.Images = stripe.StringSlice([]string{img})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(int64(math.Round(unitPrice * 100))),
				ProductData: productData,
			},
		})
	}
	return lineItems
}

// resolveImageURL returns an absolute image URL, or "" when the image
// cannot be resolved. Stripe accepts line items without images, so an
// unresolvable image never fails a checkout.
func resolveImageURL(imageURL, baseURL string) string {
	if imageURL == "" {
		return ""
	}

	if u, err := url.Parse(imageURL); err == nil && u.IsAbs() {
		return imageURL
	}

	if strings.HasPrefix(imageURL, "/") {
		return strings.TrimRight(baseURL, "/") + imageURL
	}

	return ""
}

// distinctProductIDs returns the unique product IDs in the cart,
// preserving first-seen order.
func distinctProductIDs(items []model.CartItem) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
