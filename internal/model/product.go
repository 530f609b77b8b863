package model

import "time"

// Bag sizes a product is sold in. Each size carries its own price.
const (
	BagSize12oz = "12oz"
	BagSize2lb  = "2lb"
)

// ValidBagSize reports whether s is one of the recognised bag sizes.
func ValidBagSize(s string) bool {
	return s == BagSize12oz || s == BagSize2lb
}

// Product represents a coffee product in the catalogue.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Origin       string    `json:"origin" db:"origin"`
	TastingNotes string    `json:"tastingNotes" db:"tasting_notes"`
	RoastLevel   string    `json:"roastLevel" db:"roast_level"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	Price12oz    float64   `json:"price12oz" db:"price_12oz"`
	Price2lb     float64   `json:"price2lb" db:"price_2lb"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PriceFor returns the unit price for the given bag size.
// Returns 0 for an unrecognised size.
func (p *Product) PriceFor(bagSize string) float64 {
	switch bagSize {
	case BagSize12oz:
		return p.Price12oz
	case BagSize2lb:
		return p.Price2lb
	default:
		return 0
	}
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name         string  `json:"name"`
	Origin       string  `json:"origin"`
	TastingNotes string  `json:"tastingNotes"`
	RoastLevel   string  `json:"roastLevel"`
	ImageURL     string  `json:"imageUrl"`
	Price12oz    float64 `json:"price12oz"`
	Price2lb     float64 `json:"price2lb"`
	IsActive     *bool   `json:"isActive,omitempty"`
}
