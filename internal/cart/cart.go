// Package cart aggregates products into line items and derives order totals.
//
// A Cart is owned by a single browsing session and is not safe for concurrent
// use; callers that share one across goroutines must serialize access.
package cart

import (
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jaideep-27/shophub/internal/models"
)

// ErrInvalidProduct is returned when a product record has no usable id.
var ErrInvalidProduct = errors.New("invalid product")

// Cart maps product ids to line items in insertion order.
type Cart struct {
	policy Policy
	order  []string
	items  map[string]*models.LineItem
	count  int
}

// New creates an empty cart priced with the given policy.
func New(policy Policy) *Cart {
	return &Cart{
		policy: policy,
		items:  make(map[string]*models.LineItem),
	}
}

// AddItem adds one unit of product. A product already in the cart keeps its
// position and has its quantity incremented.
func (c *Cart) AddItem(product models.Product) error {
	if err := validate(product); err != nil {
		return err
	}
	if product.Price.IsNegative() {
		return errors.Wrapf(ErrInvalidProduct, "product %s has negative price %s", product.ID, product.Price)
	}

	if item, ok := c.items[product.ID]; ok {
		item.Quantity++
	} else {
		c.items[product.ID] = &models.LineItem{Product: product, Quantity: 1}
		c.order = append(c.order, product.ID)
	}
	c.count++

	return nil
}

// RemoveItem takes one unit of product out of the cart. The line is dropped
// when its last unit goes. Removing a product that is not in the cart is a no-op.
func (c *Cart) RemoveItem(product models.Product) error {
	if err := validate(product); err != nil {
		return err
	}

	item, ok := c.items[product.ID]
	if !ok {
		return nil
	}

	if item.Quantity > 1 {
		item.Quantity--
	} else {
		delete(c.items, product.ID)
		if i := slices.Index(c.order, product.ID); i >= 0 {
			c.order = slices.Delete(c.order, i, i+1)
		}
	}
	c.count--

	return nil
}

// LineItems returns a copy of the line items in insertion order.
func (c *Cart) LineItems() []models.LineItem {
	items := make([]models.LineItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.items[id])
	}
	return items
}

// Quantity returns how many units of the product id are in the cart.
func (c *Cart) Quantity(id string) int {
	if item, ok := c.items[id]; ok {
		return item.Quantity
	}
	return 0
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	return c.count
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Subtotal sums price × quantity over every line.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, id := range c.order {
		subtotal = subtotal.Add(c.items[id].Total())
	}
	return subtotal
}

// Summary computes the order breakdown from the current contents.
func (c *Cart) Summary() models.OrderSummary {
	return c.policy.Summarize(c.Subtotal())
}

func validate(product models.Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return errors.Wrap(ErrInvalidProduct, "product id is required")
	}
	return nil
}
