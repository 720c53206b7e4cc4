package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/catalog"
)

// Client walks a services directory and yields one ServiceEntity per service.
type Client struct {
	baseURL     string
	fetcher     catalog.Fetcher
	concurrency int
	logger      *zap.Logger
}

// NewClient constructs a Client for the directory rooted at baseURL.
func NewClient(baseURL string, fetcher catalog.Fetcher, concurrency int, logger *zap.Logger) *Client {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Discover lists the root directory, fans out over its folders, and returns
// every service found. A failed root listing is an error; a failed folder is
// logged and skipped. Results are ordered root-first, then folders in the
// order the root listed them, so repeated discoveries are stable.
func (c *Client) Discover(ctx context.Context) ([]*catalog.ServiceEntity, error) {
	root, err := c.listDirectory(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list portal root: %w", err)
	}

	entities := c.toEntities(root.Services, "")

	folderEntities := make([][]*catalog.ServiceEntity, len(root.Folders))
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.concurrency)
	for i, folder := range root.Folders {
		wg.Add(1)
		go func(i int, folder string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			listing, err := c.listDirectory(ctx, folder)
			if err != nil {
				c.logger.Warn("skipping folder",
					zap.String("folder", folder),
					zap.Error(err),
				)
				return
			}
			folderEntities[i] = c.toEntities(listing.Services, folder)
		}(i, folder)
	}
	wg.Wait()

	for _, batch := range folderEntities {
		entities = append(entities, batch...)
	}
	return entities, nil
}

func (c *Client) listDirectory(ctx context.Context, folder string) (directoryListing, error) {
	url := c.baseURL
	if folder != "" {
		url += "/" + folder
	}
	body, err := c.fetcher.Fetch(ctx, url+"?f=json")
	if err != nil {
		return directoryListing{}, err
	}

	var listing directoryListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return directoryListing{}, fmt.Errorf("decode directory listing: %w", err)
	}
	return listing, nil
}

// toEntities converts directory refs into entities, sorted by name within the
// directory so output order does not depend on portal listing quirks.
func (c *Client) toEntities(refs []serviceRef, folder string) []*catalog.ServiceEntity {
	sorted := make([]serviceRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	entities := make([]*catalog.ServiceEntity, 0, len(sorted))
	for _, ref := range sorted {
		if ref.Name == "" || ref.Type == "" {
			continue
		}
		entities = append(entities, &catalog.ServiceEntity{
			Name:   displayName(ref.Name),
			Type:   ref.Type,
			Folder: folder,
			URL:    c.baseURL + "/" + ref.Name + "/" + ref.Type,
		})
	}
	return entities
}

// displayName strips the folder qualifier from a service name
// ("Utilities/WaterMains" becomes "WaterMains").
func displayName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
