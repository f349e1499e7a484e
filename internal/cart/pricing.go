package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jaideep-27/shophub/internal/models"
)

// Policy holds the checkout pricing rules applied to a cart subtotal.
type Policy struct {
	// FreeShippingThreshold is exclusive: shipping is waived only when the
	// subtotal is strictly greater than it.
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPolicy is free shipping over 100, otherwise 10, and 10% tax.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShipping:          decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.10"),
	}
}

// Validate rejects negative amounts and tax rates above 100%.
func (p Policy) Validate() error {
	switch {
	case p.FreeShippingThreshold.IsNegative():
		return errors.Errorf("free shipping threshold must not be negative: %s", p.FreeShippingThreshold)
	case p.FlatShipping.IsNegative():
		return errors.Errorf("flat shipping must not be negative: %s", p.FlatShipping)
	case p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)):
		return errors.Errorf("tax rate must be between 0 and 1: %s", p.TaxRate)
	}
	return nil
}

// Shipping returns the shipping charge for a subtotal.
// An empty cart still pays the flat rate since 0 is not above the threshold.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShipping
}

// Summarize derives the full order breakdown from a subtotal.
func (p Policy) Summarize(subtotal decimal.Decimal) models.OrderSummary {
	shipping := p.Shipping(subtotal)
	tax := subtotal.Mul(p.TaxRate)

	return models.OrderSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
