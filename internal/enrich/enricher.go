// Package enrich fills service entities with metadata fetched from their
// endpoints.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/cache"
	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/portal"
)

// Enricher fetches each entity's endpoint document and fills in description,
// extent, spatial reference and availability.
type Enricher struct {
	fetcher     catalog.Fetcher
	details     *cache.DetailCache
	clock       catalog.Clock
	concurrency int
	useCache    bool
	logger      *zap.Logger
}

// New constructs an Enricher. details may be nil to disable caching.
func New(
	fetcher catalog.Fetcher,
	details *cache.DetailCache,
	clock catalog.Clock,
	concurrency int,
	useCache bool,
	logger *zap.Logger,
) *Enricher {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{
		fetcher:     fetcher,
		details:     details,
		clock:       clock,
		concurrency: concurrency,
		useCache:    useCache && details != nil,
		logger:      logger,
	}
}

// Enrich updates entities in place using a bounded pool of workers pulling
// from a shared channel. Per-entity failures mark the entity unavailable and
// are logged, never returned; each worker only touches its own entity so no
// locking is needed on the entities themselves.
func (e *Enricher) Enrich(ctx context.Context, entities []*catalog.ServiceEntity) {
	work := make(chan *catalog.ServiceEntity)
	var wg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ent := range work {
				e.enrichOne(ctx, ent)
			}
		}()
	}
	for _, ent := range entities {
		work <- ent
	}
	close(work)
	wg.Wait()
}

func (e *Enricher) enrichOne(ctx context.Context, ent *catalog.ServiceEntity) {
	ent.CheckedAt = e.clock.Now()

	detail, err := e.lookupDetail(ctx, ent.URL)
	if err != nil {
		e.logger.Warn("service enrichment failed",
			zap.String("service", ent.Name),
			zap.String("url", ent.URL),
			zap.Error(err),
		)
		ent.Available = false
		return
	}

	ent.Available = detail.Error == nil
	if detail.Error != nil {
		e.logger.Warn("service reports error",
			zap.String("service", ent.Name),
			zap.Int("code", detail.Error.Code),
			zap.String("message", detail.Error.Message),
		)
		return
	}

	// Missing descriptions are tolerated; the entity stays with empty text.
	ent.Description = detail.ServiceDescription
	if ent.Description == "" {
		ent.Description = detail.Description
	}
	applyGeometry(ent, detail)
}

func (e *Enricher) lookupDetail(ctx context.Context, url string) (portal.ServiceDetail, error) {
	if e.useCache {
		if detail, ok := e.details.Get(url); ok {
			return detail, nil
		}
	}

	body, err := e.fetcher.Fetch(ctx, url+"?f=json")
	if err != nil {
		return portal.ServiceDetail{}, err
	}
	var detail portal.ServiceDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return portal.ServiceDetail{}, fmt.Errorf("decode service detail: %w", err)
	}

	if e.useCache {
		e.details.Put(url, detail)
	}
	return detail, nil
}

func applyGeometry(ent *catalog.ServiceEntity, detail portal.ServiceDetail) {
	wkid := 0
	if detail.SpatialReference != nil {
		wkid = pickWKID(detail.SpatialReference)
	}
	if detail.FullExtent != nil {
		if detail.FullExtent.SpatialReference != nil && wkid == 0 {
			wkid = pickWKID(detail.FullExtent.SpatialReference)
		}
		ent.Extent = &catalog.Extent{
			XMin: detail.FullExtent.XMin,
			YMin: detail.FullExtent.YMin,
			XMax: detail.FullExtent.XMax,
			YMax: detail.FullExtent.YMax,
			WKID: wkid,
		}
	}
	if wkid != 0 {
		ent.SpatialReference = "EPSG:" + strconv.Itoa(wkid)
	}
}

func pickWKID(sr *portal.SpatialRef) int {
	if sr.LatestWKID != 0 {
		return sr.LatestWKID
	}
	return sr.WKID
}
