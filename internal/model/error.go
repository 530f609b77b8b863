package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeMissingEmail       = "MISSING_EMAIL"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidBagSize     = "INVALID_BAG_SIZE"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a client-input failure with a stable code. Handlers map
// these to 400 responses; everything else is a server error.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrMissingEmail       = NewDomainError(ErrCodeMissingEmail, "Email is required")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "One or more products are invalid or no longer available")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid username or password")
)
