package model

// CheckoutRequest is the payload for starting a checkout session.
type CheckoutRequest struct {
	CustomerName string     `json:"customerName"`
	Email        string     `json:"email"`
	Items        []CartItem `json:"items"`
}

// CartItem is one line in a customer's cart. Prices are never taken
// from the client; the bag size and quantity are validated against the
// catalogue before any payment call is made.
type CartItem struct {
	ProductID int64  `json:"productId"`
	BagSize   string `json:"bagSize"`
	Quantity  int    `json:"quantity"`
}

// CheckoutResponse carries the hosted payment page URL the browser
// should be redirected to.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}
