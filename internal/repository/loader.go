package repository

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jaideep-27/shophub/internal/models"
)

// Loader reads product catalogs from local files or URLs.
// Each source holds a JSON array of products, optionally gzip compressed.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader creates a loader. A nil client gets a default with a one minute
// timeout and a nil logger falls back to slog.Default.
func NewLoader(client *http.Client, logger *slog.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, logger: logger}
}

// Load fetches every source concurrently and returns the products in source
// order. http(s) sources are downloaded, anything else is read from disk.
// Any failing source fails the whole load, as does an id seen twice.
func (l *Loader) Load(ctx context.Context, sources []string) ([]models.Product, error) {
	if len(sources) == 0 {
		return nil, errors.New("no catalog sources provided")
	}

	results := make([][]models.Product, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			products, err := l.loadOne(gctx, src)
			if err != nil {
				return errors.Wrapf(err, "load source %d (%s)", i+1, src)
			}
			results[i] = products
			l.logger.Debug("catalog source loaded", "source", src, "products", len(products))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	var merged []models.Product
	for i, products := range results {
		for _, p := range products {
			if prev, dup := seen[p.ID]; dup {
				return nil, errors.Wrapf(ErrDuplicateID, "%s in %s and %s", p.ID, prev, sources[i])
			}
			seen[p.ID] = sources[i]
			merged = append(merged, p)
		}
	}

	return merged, nil
}

// LoadFromFiles loads products from local files
func (l *Loader) LoadFromFiles(ctx context.Context, paths []string) ([]models.Product, error) {
	return l.Load(ctx, paths)
}

// LoadFromURLs loads products from remote URLs
func (l *Loader) LoadFromURLs(ctx context.Context, urls []string) ([]models.Product, error) {
	return l.Load(ctx, urls)
}

func (l *Loader) loadOne(ctx context.Context, src string) ([]models.Product, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.loadFromURL(ctx, src)
	}
	return loadFromFile(src)
}

func (l *Loader) loadFromURL(ctx context.Context, url string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return decodeProducts(resp.Body)
}

func loadFromFile(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file")
	}
	defer f.Close()

	return decodeProducts(f)
}

// decodeProducts parses a JSON product array, gunzipping first when the
// payload starts with the gzip magic bytes.
func decodeProducts(r io.Reader) ([]models.Product, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer gz.Close()
		src = gz
	}

	var products []models.Product
	if err := json.NewDecoder(src).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, errors.Errorf("product at index %d has no id", i)
		}
		if p.Price.IsNegative() {
			return nil, errors.Errorf("product %s has negative price %s", p.ID, p.Price)
		}
	}

	return products, nil
}
