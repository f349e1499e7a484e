package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem is one product in a cart together with how many units were added
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns price × quantity for the line.
func (li LineItem) Total() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// OrderSummary is the checkout breakdown derived from a cart.
// It is recomputed on demand and never stored.
type OrderSummary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// FreeShipping reports whether the shipping charge was waived.
func (s OrderSummary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// MarshalJSON renders every amount fixed to two decimal places.
func (s OrderSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal     string `json:"subtotal"`
		Shipping     string `json:"shipping"`
		Tax          string `json:"tax"`
		Total        string `json:"total"`
		FreeShipping bool   `json:"freeShipping"`
	}{
		Subtotal:     s.Subtotal.StringFixed(2),
		Shipping:     s.Shipping.StringFixed(2),
		Tax:          s.Tax.StringFixed(2),
		Total:        s.Total.StringFixed(2),
		FreeShipping: s.FreeShipping(),
	})
}

// CartView is what the presentation layer renders for a session's cart.
type CartView struct {
	SessionID string       `json:"sessionId"`
	Items     []LineItem   `json:"items"`
	ItemCount int          `json:"itemCount"`
	Summary   OrderSummary `json:"summary"`
}
