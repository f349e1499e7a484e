package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-faster/errors"

	"github.com/jaideep-27/shophub/internal/cart"
	"github.com/jaideep-27/shophub/internal/models"
	"github.com/jaideep-27/shophub/internal/session"
)

var ErrProductRequired = errors.New("product id is required")

// ProductLookup resolves catalog products by id
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CartService applies shopper actions to the cart of a session
type CartService struct {
	products ProductLookup
	sessions *session.Store
	logger   *slog.Logger
}

// NewCartService creates a new cart service
func NewCartService(products ProductLookup, sessions *session.Store, logger *slog.Logger) *CartService {
	return &CartService{
		products: products,
		sessions: sessions,
		logger:   logger,
	}
}

// StartSession opens a new browsing session with an empty cart
func (s *CartService) StartSession() string {
	id := s.sessions.Create()
	s.logger.Info("session started", "session_id", id)
	return id
}

// EndSession discards a session and its cart
func (s *CartService) EndSession(sessionID string) error {
	if !s.sessions.Exists(sessionID) {
		return session.ErrSessionNotFound
	}
	s.sessions.Delete(sessionID)
	s.logger.Info("session ended", "session_id", sessionID)
	return nil
}

// AddItem looks the product up in the catalog and adds one unit of it
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string) (*models.CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductRequired
	}
	if !s.sessions.Exists(sessionID) {
		return nil, session.ErrSessionNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup product %s", productID)
	}

	var view *models.CartView
	err = s.sessions.Do(sessionID, func(c *cart.Cart) error {
		if err := c.AddItem(*product); err != nil {
			return err
		}
		view = newCartView(sessionID, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("item added", "session_id", sessionID, "product_id", productID, "item_count", view.ItemCount)
	return view, nil
}

// RemoveItem takes one unit of the product out of the cart. The catalog is
// not consulted, so products that have since left the catalog can still be
// removed.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductRequired
	}

	var view *models.CartView
	err := s.sessions.Do(sessionID, func(c *cart.Cart) error {
		if err := c.RemoveItem(models.Product{ID: productID}); err != nil {
			return err
		}
		view = newCartView(sessionID, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("item removed", "session_id", sessionID, "product_id", productID, "item_count", view.ItemCount)
	return view, nil
}

// GetCart returns the line items, count and summary of a session's cart
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	var view *models.CartView
	err := s.sessions.Do(sessionID, func(c *cart.Cart) error {
		view = newCartView(sessionID, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Summary returns only the order summary of a session's cart
func (s *CartService) Summary(ctx context.Context, sessionID string) (*models.OrderSummary, error) {
	var summary models.OrderSummary
	err := s.sessions.Do(sessionID, func(c *cart.Cart) error {
		summary = c.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func newCartView(sessionID string, c *cart.Cart) *models.CartView {
	return &models.CartView{
		SessionID: sessionID,
		Items:     c.LineItems(),
		ItemCount: c.ItemCount(),
		Summary:   c.Summary(),
	}
}
