// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/cache"
	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/clock/system"
	"github.com/dannyfullextent/explorer/internal/config"
	"github.com/dannyfullextent/explorer/internal/enrich"
	"github.com/dannyfullextent/explorer/internal/keywords"
	"github.com/dannyfullextent/explorer/internal/logging"
	"github.com/dannyfullextent/explorer/internal/metrics"
	"github.com/dannyfullextent/explorer/internal/portal"
	"github.com/dannyfullextent/explorer/internal/tokenize"
)

// App holds the shared, long-lived services: logger, detail cache, portal
// client, enricher and categorizer. It is initialized once at startup and
// fails fast if any service cannot be built.
type App struct {
	cfg         config.Config
	logger      *zap.Logger
	details     *cache.DetailCache
	discoverer  catalog.Discoverer
	enricher    catalog.Enricher
	categorizer *keywords.Categorizer
	clock       catalog.Clock
}

// New builds an App from configuration.
func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	metrics.Init()

	fetcher, err := portal.NewCollyFetcher(cfg.Portal, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize fetcher: %w", err)
	}

	var tokenizer catalog.Tokenizer
	switch cfg.Keywords.Tokenizer {
	case "stem":
		logger.Info("Using stemming tokenizer")
		tokenizer = tokenize.NewStemTokenizer()
	default:
		tokenizer = tokenize.NewNounPhraseTokenizer(logger)
	}

	clk := system.New()
	details := cache.New()
	extractor := keywords.NewExtractor(tokenizer, cfg.Keywords.MaxShare, logger)

	return &App{
		cfg:     cfg,
		logger:  logger,
		details: details,
		discoverer: portal.NewClient(
			cfg.Portal.BaseURL,
			fetcher,
			cfg.Portal.Concurrency,
			logger,
		),
		enricher: enrich.New(
			fetcher,
			details,
			clk,
			cfg.Enrich.Concurrency,
			cfg.Enrich.CacheLookup,
			logger,
		),
		categorizer: keywords.NewCategorizer(extractor),
		clock:       clk,
	}, nil
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Details returns the service-detail cache.
func (a *App) Details() *cache.DetailCache {
	return a.details
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// BuildCatalog runs the full pipeline: discover services, enrich them, then
// compute the category and keyword indices. Indices are computed fresh on
// every call; only fetched service details are cached.
func (a *App) BuildCatalog(ctx context.Context) (catalog.Catalog, error) {
	start := a.clock.Now()

	entities, err := a.discoverer.Discover(ctx)
	if err != nil {
		metrics.ObserveCatalogBuild("error", a.clock.Now().Sub(start), 0, 0)
		return catalog.Catalog{}, fmt.Errorf("discover services: %w", err)
	}

	a.enricher.Enrich(ctx, entities)
	index := a.categorizer.Categorize(entities)

	elapsed := a.clock.Now().Sub(start)
	metrics.ObserveCatalogBuild("ok", elapsed, len(entities), len(index.Keywords))
	a.logger.Info("catalog built",
		zap.Int("services", len(entities)),
		zap.Int("types", len(index.Types)),
		zap.Int("keywords", len(index.Keywords)),
		zap.Duration("elapsed", elapsed),
	)

	return catalog.Catalog{
		Services:    entities,
		Index:       index,
		GeneratedAt: a.clock.Now(),
	}, nil
}

// Close flushes the logger. Best effort; logging may itself be failing.
func (a *App) Close() {
	_ = a.logger.Sync()
}
