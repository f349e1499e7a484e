package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jaideep-27/shophub/internal/models"
	"github.com/jaideep-27/shophub/internal/repository"
	"github.com/jaideep-27/shophub/internal/service"
	"github.com/jaideep-27/shophub/pkg/logger"
)

func newProductRouter() chi.Router {
	repo := repository.NewInMemoryProductRepository()
	svc := service.NewProductService(repo)
	handler := NewProductHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Get("/api/products", handler.ListProducts)
	r.Get("/api/products/{productId}", handler.GetProduct)
	r.Get("/api/categories", handler.ListCategories)
	return r
}

func TestListProducts(t *testing.T) {
	r := newProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(products) != 12 {
		t.Errorf("expected 12 products, got %d", len(products))
	}
	if products[0].ID != "1" || products[len(products)-1].ID != "12" {
		t.Errorf("unexpected listing order: first=%s last=%s", products[0].ID, products[len(products)-1].ID)
	}
}

func TestListProducts_ByCategory(t *testing.T) {
	r := newProductRouter()

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"exact category", "?category=jewelery", 3},
		{"category ignores case", "?category=Electronics", 3},
		{"escaped category", "?category=men%27s%20clothing", 3},
		{"unknown category", "?category=garden", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var products []models.Product
			if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(products) != tt.wantCount {
				t.Errorf("expected %d products, got %d", tt.wantCount, len(products))
			}
		})
	}
}

func TestGetProduct_Success(t *testing.T) {
	r := newProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if product.ID != "1" {
		t.Errorf("expected product ID 1, got %s", product.ID)
	}
	if product.Title != "Fjallraven Foldsack No. 1 Backpack" {
		t.Errorf("unexpected product title: %s", product.Title)
	}
	if product.Price.StringFixed(2) != "109.95" {
		t.Errorf("expected price 109.95, got %s", product.Price)
	}
	if product.Category != "men's clothing" {
		t.Errorf("expected category men's clothing, got %s", product.Category)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	r := newProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error != "Product not found" {
		t.Errorf("unexpected error message: %s", errResp.Error)
	}
}

func TestGetProduct_BlankID(t *testing.T) {
	r := newProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products/%20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	r := newProductRouter()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"men's clothing", "jewelery", "electronics", "women's clothing"}},
		{"substring", "?q=cloth", []string{"men's clothing", "women's clothing"}},
		{"case insensitive", "?q=JEWEL", []string{"jewelery"}},
		{"no match", "?q=garden", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/categories"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var got []string
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("category[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
