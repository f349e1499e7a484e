package repository

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaideep-27/shophub/pkg/logger"
)

const (
	catalogA = `[
		{"id": 1, "title": "Backpack", "price": 109.95, "category": "men's clothing", "rating": {"rate": 3.9, "count": 120}},
		{"id": 2, "title": "T-Shirt", "price": 22.3, "category": "men's clothing"}
	]`
	catalogB = `[{"id": "sku-7", "title": "Hard Drive", "price": "64.00", "category": "electronics"}]`
)

// setupCatalogFiles writes a plain and a gzipped catalog into a temp dir
func setupCatalogFiles(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	plain := filepath.Join(tmpDir, "catalog-a.json")
	zipped := filepath.Join(tmpDir, "catalog-b.json.gz")

	require.NoError(t, os.WriteFile(plain, []byte(catalogA), 0o644))
	require.NoError(t, os.WriteFile(zipped, gzipBytes(t, catalogB), 0o644))

	return plain, zipped
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestLoader_LoadFromFiles(t *testing.T) {
	loader := NewLoader(nil, logger.Discard())
	ctx := context.Background()

	t.Run("plain and gzipped files keep source order", func(t *testing.T) {
		plain, zipped := setupCatalogFiles(t)

		products, err := loader.LoadFromFiles(ctx, []string{zipped, plain})
		require.NoError(t, err)
		require.Len(t, products, 3)

		assert.Equal(t, "sku-7", products[0].ID)
		assert.Equal(t, "1", products[1].ID)
		assert.Equal(t, "2", products[2].ID)
		assert.Equal(t, "109.95", products[1].Price.String())
		assert.Equal(t, 120, products[1].Rating.Count)
		assert.Equal(t, "64", products[0].Price.String())
	})

	t.Run("empty file paths", func(t *testing.T) {
		_, err := loader.LoadFromFiles(ctx, []string{})
		assert.Error(t, err)
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := loader.LoadFromFiles(ctx, []string{"/non/existent/catalog.json"})
		assert.Error(t, err)
	})

	t.Run("same file twice is a duplicate", func(t *testing.T) {
		plain, _ := setupCatalogFiles(t)
		_, err := loader.LoadFromFiles(ctx, []string{plain, plain})
		assert.True(t, errors.Is(err, ErrDuplicateID), "error = %v", err)
	})

	t.Run("product without id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"title": "nameless", "price": 1}]`), 0o644))

		_, err := loader.LoadFromFiles(ctx, []string{path})
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "title": "refund", "price": -5}]`), 0o644))

		_, err := loader.LoadFromFiles(ctx, []string{path})
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

		_, err := loader.LoadFromFiles(ctx, []string{path})
		assert.Error(t, err)
	})
}

func TestLoader_LoadFromURLs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogA))
	})
	mux.HandleFunc("/b.json.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gzipBytes(t, catalogB))
	})
	mux.HandleFunc("/missing.json", http.NotFound)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := NewLoader(srv.Client(), logger.Discard())
	ctx := context.Background()

	t.Run("downloads every source", func(t *testing.T) {
		products, err := loader.LoadFromURLs(ctx, []string{srv.URL + "/a.json", srv.URL + "/b.json.gz"})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "sku-7", products[2].ID)
	})

	t.Run("one failing source fails the load", func(t *testing.T) {
		_, err := loader.LoadFromURLs(ctx, []string{srv.URL + "/a.json", srv.URL + "/missing.json"})
		assert.Error(t, err)
	})

	t.Run("mixed file and url sources", func(t *testing.T) {
		_, zipped := setupCatalogFiles(t)
		products, err := loader.Load(ctx, []string{srv.URL + "/a.json", zipped})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}
