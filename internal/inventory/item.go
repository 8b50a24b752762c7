package inventory

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Item is one catalog record. Values returned by System are copies; changing
// them does not affect the catalog.
type Item struct {
	SKU       string  `json:"sku" yaml:"sku"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`
}

// Value returns quantity × unit price.
func (it Item) Value() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// normalizeSKU returns the NFC form of sku, or a VALIDATION error if sku is
// empty, not valid UTF-8, has surrounding whitespace or contains control
// characters.
func normalizeSKU(op, sku string) (string, error) {
	if sku == "" {
		return "", validationError(op, sku, "sku must not be empty")
	}
	if !utf8.ValidString(sku) {
		return "", validationError(op, "", "sku is not valid UTF-8")
	}
	if strings.TrimSpace(sku) != sku {
		return "", validationError(op, sku, "sku must not start or end with whitespace")
	}
	for _, r := range sku {
		if unicode.IsControl(r) {
			return "", validationError(op, sku, "sku must not contain control characters")
		}
	}
	return norm.NFC.String(sku), nil
}

// validateItem normalises the SKU and checks the numeric fields.
func validateItem(op string, it Item) (Item, error) {
	sku, err := normalizeSKU(op, it.SKU)
	if err != nil {
		return Item{}, err
	}
	if it.Quantity < 0 {
		return Item{}, validationError(op, sku, "quantity must be non-negative, got %d", it.Quantity)
	}
	if math.IsNaN(it.UnitPrice) || math.IsInf(it.UnitPrice, 0) {
		return Item{}, validationError(op, sku, "unit price must be a finite number")
	}
	if it.UnitPrice < 0 {
		return Item{}, validationError(op, sku, "unit price must be non-negative, got %s", FormatPrice(it.UnitPrice))
	}
	price := it.UnitPrice
	if price == 0 {
		price = 0 // drop the sign of -0
	}
	return Item{SKU: sku, Quantity: it.Quantity, UnitPrice: price}, nil
}

// ParseQuantity parses a non-negative decimal integer.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, validationError("parse", "", "quantity %q is not an integer", s)
	}
	if n < 0 {
		return 0, validationError("parse", "", "quantity must be non-negative, got %d", n)
	}
	return n, nil
}

// ParseDelta parses a signed decimal integer.
func ParseDelta(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, validationError("parse", "", "delta %q is not an integer", s)
	}
	return n, nil
}

// ParsePrice parses a non-negative finite decimal number. NaN, infinities
// and hexadecimal floats are rejected.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xXpP_") {
		return 0, validationError("parse", "", "unit price %q is not a decimal number", s)
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, validationError("parse", "", "unit price %q is not a decimal number", s)
	}
	if p < 0 {
		return 0, validationError("parse", "", "unit price must be non-negative, got %s", s)
	}
	return p, nil
}

// FormatPrice renders p with the fewest digits that parse back to p.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
