package models

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Product represents a catalog item available in the storefront.
// The JSON shape follows the fakestore catalog API the storefront consumes.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Rating      Rating          `json:"rating"`
}

// Rating is the aggregate customer rating of a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// UnmarshalJSON accepts the product id either as a JSON number or a string.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		p.ID = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &p.ID); err != nil {
			return errors.Wrap(err, "decode product id")
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(err, "decode product id")
		}
		p.ID = n.String()
	}

	return nil
}
