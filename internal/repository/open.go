package repository

import (
	"context"
	"log/slog"

	"github.com/go-faster/errors"

	"github.com/jaideep-27/shophub/internal/config"
)

// Open builds the product catalog selected by cfg.Source.
// The file source loads every configured path or URL up front; the http
// source primes its id index before returning.
func Open(ctx context.Context, cfg config.CatalogConfig, logger *slog.Logger) (ProductRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Source {
	case config.SourceMemory, "":
		return NewInMemoryProductRepository(), nil

	case config.SourceFile:
		products, err := NewLoader(nil, logger).Load(ctx, cfg.Files)
		if err != nil {
			return nil, errors.Wrap(err, "load catalog")
		}
		repo, err := NewInMemoryProductRepositoryFrom(products)
		if err != nil {
			return nil, errors.Wrap(err, "index catalog")
		}
		logger.Info("catalog loaded", "sources", len(cfg.Files), "products", len(products))
		return repo, nil

	case config.SourceHTTP:
		repo := NewHTTPProductRepository(cfg.BaseURL, cfg.Timeout, logger)
		if err := repo.Prime(ctx); err != nil {
			return nil, errors.Wrap(err, "prime catalog")
		}
		logger.Info("remote catalog ready", "base_url", cfg.BaseURL)
		return repo, nil
	}

	return nil, errors.Errorf("unknown catalog source %q", cfg.Source)
}
