package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/jaideep-27/shophub/internal/models"
)

const (
	// falsePositiveRate bounds how often an unknown id still costs a round trip.
	falsePositiveRate = 0.01
	minIndexCapacity  = 1024
)

// HTTPProductRepository reads products from a fakestore compatible REST catalog.
//
// After a full listing has been fetched, ids are indexed in a bloom filter so
// lookups for ids that are definitely not in the catalog skip the network.
// The index is rebuilt on every GetAll.
type HTTPProductRepository struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	known *bloom.BloomFilter
}

// NewHTTPProductRepository creates a catalog client rooted at baseURL
func NewHTTPProductRepository(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPProductRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPProductRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Prime fetches the full listing once so the id index is warm.
func (r *HTTPProductRepository) Prime(ctx context.Context) error {
	_, err := r.GetAll(ctx)
	return err
}

// GetAll returns all products
func (r *HTTPProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}

	filter := bloom.NewWithEstimates(uint(max(len(products), minIndexCapacity)), falsePositiveRate)
	for _, p := range products {
		filter.AddString(p.ID)
	}

	r.mu.Lock()
	r.known = filter
	r.mu.Unlock()

	r.logger.Debug("catalog id index rebuilt", "products", len(products))
	return products, nil
}

// GetByID returns a product by its ID
func (r *HTTPProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !r.mightContain(id) {
		return nil, ErrProductNotFound
	}

	var product *models.Product
	if err := r.getJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	// the fakestore API answers unknown ids with 200 and an empty body
	if product == nil || product.ID == "" {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByCategory returns the products of one category
func (r *HTTPProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.getJSON(ctx, "/products/category/"+url.PathEscape(category), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories returns the distinct category names
func (r *HTTPProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *HTTPProductRepository) mightContain(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.known == nil {
		return true
	}
	return r.known.TestString(id)
}

// getJSON decodes the response body of GET baseURL+path into out.
// An empty body leaves out untouched; 404 maps to ErrProductNotFound.
func (r *HTTPProductRepository) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "get %s", path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return errors.Errorf("get %s: unexpected status code: %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}
