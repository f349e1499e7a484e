package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"

	"github.com/jaideep-27/shophub/pkg/logger"
)

// newFakeStore serves a small fakestore compatible catalog and counts requests
// for single products.
func newFakeStore(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var byIDHits atomic.Int32
	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "price": 109.95, "category": "men's clothing"},
			{"id": 7, "title": "Hard Drive", "price": 64, "category": "electronics"}
		]`))
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["electronics", "men's clothing"]`))
	})
	mux.HandleFunc("GET /products/category/{name}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("name") != "electronics" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id": 7, "title": "Hard Drive", "price": 64, "category": "electronics"}]`))
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		byIDHits.Add(1)
		switch r.PathValue("id") {
		case "1":
			_, _ = w.Write([]byte(`{"id": 1, "title": "Backpack", "price": 109.95, "category": "men's clothing"}`))
		case "7":
			_, _ = w.Write([]byte(`{"id": 7, "title": "Hard Drive", "price": 64, "category": "electronics"}`))
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			// fakestore answers unknown ids with an empty 200
			w.WriteHeader(http.StatusOK)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &byIDHits
}

func TestHTTPProductRepository_GetByID(t *testing.T) {
	srv, _ := newFakeStore(t)
	repo := NewHTTPProductRepository(srv.URL+"/", time.Second, logger.Discard())
	ctx := context.Background()

	product, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID unexpected error: %v", err)
	}
	if product.ID != "1" || product.Title != "Backpack" {
		t.Errorf("unexpected product: %+v", product)
	}
	if product.Price.String() != "109.95" {
		t.Errorf("price = %s, want 109.95", product.Price)
	}

	if _, err := repo.GetByID(ctx, "42"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("empty body: error = %v, want ErrProductNotFound", err)
	}

	if _, err := repo.GetByID(ctx, "500"); err == nil || errors.Is(err, ErrProductNotFound) {
		t.Errorf("server error: error = %v, want a non not-found error", err)
	}
}

func TestHTTPProductRepository_IndexSkipsUnknownIDs(t *testing.T) {
	srv, hits := newFakeStore(t)
	repo := NewHTTPProductRepository(srv.URL, time.Second, logger.Discard())
	ctx := context.Background()

	if err := repo.Prime(ctx); err != nil {
		t.Fatalf("Prime unexpected error: %v", err)
	}

	if _, err := repo.GetByID(ctx, "7"); err != nil {
		t.Fatalf("GetByID(7) unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 remote lookup for a known id, got %d", hits.Load())
	}

	// unknown ids are rejected by the local index, allowing one false positive
	for _, id := range []string{"does-not-exist-1", "does-not-exist-2", "does-not-exist-3"} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("GetByID(%s) error = %v, want ErrProductNotFound", id, err)
		}
	}
	if hits.Load() > 2 {
		t.Errorf("expected unknown ids to be filtered locally, got %d remote lookups", hits.Load())
	}
}

func TestHTTPProductRepository_Listings(t *testing.T) {
	srv, _ := newFakeStore(t)
	repo := NewHTTPProductRepository(srv.URL, time.Second, logger.Discard())
	ctx := context.Background()

	products, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}

	categories, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories unexpected error: %v", err)
	}
	if strings.Join(categories, ",") != "electronics,men's clothing" {
		t.Errorf("categories = %v", categories)
	}

	electronics, err := repo.GetByCategory(ctx, "electronics")
	if err != nil {
		t.Fatalf("GetByCategory unexpected error: %v", err)
	}
	if len(electronics) != 1 || electronics[0].ID != "7" {
		t.Errorf("electronics = %+v", electronics)
	}

	none, err := repo.GetByCategory(ctx, "toys")
	if err != nil {
		t.Fatalf("GetByCategory unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no toys, got %d", len(none))
	}
}

func TestHTTPProductRepository_Unreachable(t *testing.T) {
	srv, _ := newFakeStore(t)
	url := srv.URL
	srv.Close()

	repo := NewHTTPProductRepository(url, 200*time.Millisecond, logger.Discard())
	if _, err := repo.GetAll(context.Background()); err == nil {
		t.Error("expected error for unreachable catalog")
	}
}
