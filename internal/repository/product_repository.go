package repository

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jaideep-27/shophub/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("duplicate product id")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	products   map[string]models.Product
	order      []string
	categories []string
}

// NewInMemoryProductRepository creates a new in-memory product repository with seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	repo, err := NewInMemoryProductRepositoryFrom(seedProducts())
	if err != nil {
		// seed data is static; a failure here is a programming error
		panic(err)
	}
	return repo
}

// NewInMemoryProductRepositoryFrom builds a repository over the given products.
// Listings are ordered by id (numerically when ids are numbers) and categories
// appear in the order they are first seen in that listing.
func NewInMemoryProductRepositoryFrom(products []models.Product) (*InMemoryProductRepository, error) {
	repo := &InMemoryProductRepository{
		products: make(map[string]models.Product, len(products)),
		order:    make([]string, 0, len(products)),
	}

	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, errors.Errorf("product %q has no id", p.Title)
		}
		if _, exists := repo.products[p.ID]; exists {
			return nil, errors.Wrap(ErrDuplicateID, p.ID)
		}
		repo.products[p.ID] = p
		repo.order = append(repo.order, p.ID)
	}

	slices.SortStableFunc(repo.order, compareIDs)

	seen := make(map[string]bool)
	for _, id := range repo.order {
		category := repo.products[id].Category
		if category != "" && !seen[category] {
			seen[category] = true
			repo.categories = append(repo.categories, category)
		}
	}

	return repo, nil
}

// GetAll returns all products
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// GetByCategory returns the products of one category. Matching ignores case.
func (r *InMemoryProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	for _, id := range r.order {
		p := r.products[id]
		if strings.EqualFold(p.Category, category) {
			products = append(products, p)
		}
	}
	return products, nil
}

// Categories returns the distinct category names.
func (r *InMemoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	return slices.Clone(r.categories), nil
}

// compareIDs orders numeric ids by value and falls back to string order.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func seedProducts() []models.Product {
	price := decimal.RequireFromString
	const img = "https://fakestoreapi.com/img/"

	return []models.Product{
		{ID: "1", Title: "Fjallraven Foldsack No. 1 Backpack", Price: price("109.95"), Category: "men's clothing",
			Image: img + "81fPKd-2AYL._AC_SL1500_.jpg", Description: "Your perfect pack for everyday use and walks in the forest.",
			Rating: models.Rating{Rate: 3.9, Count: 120}},
		{ID: "2", Title: "Mens Casual Premium Slim Fit T-Shirts", Price: price("22.3"), Category: "men's clothing",
			Image: img + "71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg", Description: "Slim-fitting style, contrast raglan long sleeve.",
			Rating: models.Rating{Rate: 4.1, Count: 259}},
		{ID: "3", Title: "Mens Cotton Jacket", Price: price("55.99"), Category: "men's clothing",
			Image: img + "71li-ujtlUL._AC_UX679_.jpg", Description: "Great outerwear jacket for spring, autumn and winter.",
			Rating: models.Rating{Rate: 4.7, Count: 500}},
		{ID: "4", Title: "John Hardy Women's Legends Naga Bracelet", Price: price("695"), Category: "jewelery",
			Image: img + "71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg", Description: "Gold and silver dragon station chain bracelet.",
			Rating: models.Rating{Rate: 4.6, Count: 400}},
		{ID: "5", Title: "Solid Gold Petite Micropave", Price: price("168"), Category: "jewelery",
			Image: img + "61sbMiUnoGL._AC_UL640_QL65_ML3_.jpg", Description: "Satisfaction guaranteed. Return or exchange within 30 days.",
			Rating: models.Rating{Rate: 3.9, Count: 70}},
		{ID: "6", Title: "White Gold Plated Princess", Price: price("9.99"), Category: "jewelery",
			Image: img + "71YAIFU48IL._AC_UL640_QL65_ML3_.jpg", Description: "Classic created wedding engagement solitaire diamond promise ring.",
			Rating: models.Rating{Rate: 3, Count: 400}},
		{ID: "7", Title: "WD 2TB Elements Portable External Hard Drive", Price: price("64"), Category: "electronics",
			Image: img + "61IBBVJvSDL._AC_SY879_.jpg", Description: "USB 3.0 and USB 2.0 compatibility with fast data transfers.",
			Rating: models.Rating{Rate: 3.3, Count: 203}},
		{ID: "8", Title: "SanDisk SSD PLUS 1TB Internal SSD", Price: price("109"), Category: "electronics",
			Image: img + "61U7T1koQqL._AC_SX679_.jpg", Description: "Easy upgrade for faster boot up, shutdown and application load.",
			Rating: models.Rating{Rate: 2.9, Count: 470}},
		{ID: "9", Title: "Acer SB220Q 21.5 inch Full HD Monitor", Price: price("599"), Category: "electronics",
			Image: img + "81QpkIctqPL._AC_SX679_.jpg", Description: "21.5 inch full HD widescreen IPS display.",
			Rating: models.Rating{Rate: 2.9, Count: 250}},
		{ID: "10", Title: "BIYLACLESEN Women's 3-in-1 Snowboard Jacket", Price: price("56.99"), Category: "women's clothing",
			Image: img + "51Y5NI-I5jL._AC_UX679_.jpg", Description: "Detachable liner fabric, warm fleece.",
			Rating: models.Rating{Rate: 2.6, Count: 235}},
		{ID: "11", Title: "Rain Jacket Women Windbreaker", Price: price("39.99"), Category: "women's clothing",
			Image: img + "71HblAHs5xL._AC_UY879_-2.jpg", Description: "Lightweight, perfect for trip or casual wear.",
			Rating: models.Rating{Rate: 3.8, Count: 679}},
		{ID: "12", Title: "DANVOUY Womens T Shirt Casual Cotton Short", Price: price("12.99"), Category: "women's clothing",
			Image: img + "61pHAEJ4NML._AC_UX679_.jpg", Description: "95% cotton, 5% spandex, casual short sleeve.",
			Rating: models.Rating{Rate: 3.6, Count: 145}},
	}
}

var (
	_ ProductRepository = (*InMemoryProductRepository)(nil)
	_ ProductRepository = (*HTTPProductRepository)(nil)
)
