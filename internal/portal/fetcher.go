package portal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/config"
	"github.com/dannyfullextent/explorer/internal/metrics"
)

// CollyFetcher implements catalog.Fetcher using a Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based document fetcher.
func NewCollyFetcher(cfg config.PortalConfig, logger *zap.Logger) (*CollyFetcher, error) {
	metrics.Init()
	if logger == nil {
		logger = zap.NewNop()
	}
	base := colly.NewCollector(
		colly.Async(true),
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		MaxConnsPerHost:       cfg.Concurrency * 2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(timeout)

	if err := base.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Concurrency,
	}); err != nil {
		return nil, err
	}

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves a document via the configured Colly collector. Non-2xx
// responses surface as colly errors.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{body: append([]byte{}, r.Body...)})
	})

	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		metrics.ObservePortalRequest(rawURL, "error")
		return nil, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.err != nil {
			metrics.ObservePortalRequest(rawURL, "error")
			return nil, res.err
		}
		metrics.ObservePortalRequest(rawURL, "ok")
		f.logger.Debug("fetched portal document",
			zap.String("url", rawURL),
			zap.Int("bytes", len(res.body)),
		)
		return res.body, nil
	default:
		metrics.ObservePortalRequest(rawURL, "error")
		return nil, errors.New("colly fetch produced no result")
	}
}

type fetchResult struct {
	body []byte
	err  error
}
