// Package cart implements the cart-items token: the serialized cart
// contents embedded in Stripe session metadata at checkout time and
// decoded back by the webhook after payment completes. It is the only
// channel carrying validated cart state across the asynchronous gap
// between session creation and payment confirmation, so encoding and
// decoding must round-trip exactly.
package cart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Wire format: items joined by itemSep, fields within an item joined by
// fieldSep, fields in fixed order productID|bagSize|quantity|unitPrice|name.
const (
	itemSep  = "||"
	fieldSep = "|"
)

// Line is one validated cart line carried through session metadata.
// UnitPrice is the catalogue price resolved at checkout time, never a
// client-supplied value.
type Line struct {
	ProductID   int64
	BagSize     string
	Quantity    int
	UnitPrice   float64
	ProductName string
}

// Total returns the order total over the given lines, rounded to two
// decimal places.
func Total(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return math.Round(total*100) / 100
}

// Encode serialises lines into the metadata token. It fails if a product
// name contains a delimiter character, since that would make the token
// ambiguous on decode.
func Encode(lines []Line) (string, error) {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(l.ProductName, fieldSep) {
			return "", fmt.Errorf("product name %q contains reserved delimiter %q", l.ProductName, fieldSep)
		}
		if strings.Contains(l.BagSize, fieldSep) {
			return "", fmt.Errorf("bag size %q contains reserved delimiter %q", l.BagSize, fieldSep)
		}
		parts = append(parts, strings.Join([]string{
			strconv.FormatInt(l.ProductID, 10),
			l.BagSize,
			strconv.Itoa(l.Quantity),
			strconv.FormatFloat(l.UnitPrice, 'f', 2, 64),
			l.ProductName,
		}, fieldSep))
	}
	return strings.Join(parts, itemSep), nil
}

// Decode parses a metadata token back into cart lines. Empty entries
// (for example from a trailing separator) are skipped; a malformed entry
// fails the whole decode.
func Decode(token string) ([]Line, error) {
	if token == "" {
		return nil, fmt.Errorf("empty cart token")
	}

	var lines []Line
	for _, entry := range strings.Split(token, itemSep) {
		if entry == "" {
			continue
		}

		fields := strings.SplitN(entry, fieldSep, 5)
		if len(fields) < 5 {
			return nil, fmt.Errorf("malformed cart token entry %q: expected 5 fields, got %d", entry, len(fields))
		}

		productID, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed product id %q in cart token: %w", fields[0], err)
		}

		quantity, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("malformed quantity %q in cart token: %w", fields[2], err)
		}

		unitPrice, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed unit price %q in cart token: %w", fields[3], err)
		}

		lines = append(lines, Line{
			ProductID:   productID,
			BagSize:     fields[1],
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			ProductName: fields[4],
		})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("cart token contains no items")
	}

	return lines, nil
}
