package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/config"
)

type fakeBuilder struct {
	cat   catalog.Catalog
	err   error
	calls int
}

func (b *fakeBuilder) BuildCatalog(context.Context) (catalog.Catalog, error) {
	b.calls++
	return b.cat, b.err
}

type fakePurger struct {
	dropped int
}

func (p *fakePurger) Purge() int {
	return p.dropped
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: 8080, TimeoutSeconds: 30},
	}
}

func testCatalog() catalog.Catalog {
	roads := &catalog.ServiceEntity{
		Name:        "Roads",
		Type:        "FeatureServer",
		Description: "street centerlines",
		Available:   true,
	}
	imagery := &catalog.ServiceEntity{
		Name:        "Aerials",
		Type:        "ImageServer",
		Description: "orthophoto imagery",
		Available:   true,
	}
	return catalog.Catalog{
		Services: []*catalog.ServiceEntity{roads, imagery},
		Index: catalog.CategoryIndex{
			Types: map[string][]*catalog.ServiceEntity{
				"FeatureServer": {roads},
				"ImageServer":   {imagery},
			},
			Keywords: catalog.KeywordIndex{
				"street":  {roads},
				"imagery": {imagery},
			},
		},
		GeneratedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakeBuilder{}, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_GetCatalog(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{cat: testCatalog()}
	server := NewServer(builder, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, builder.calls)

	var payload struct {
		Services []struct {
			Name string `json:"name"`
		} `json:"services"`
		Index struct {
			Types map[string][]json.RawMessage `json:"types"`
		} `json:"index"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Services, 2)
	require.Equal(t, "Roads", payload.Services[0].Name)
	require.Contains(t, payload.Index.Types, "FeatureServer")
}

func TestServer_GetCatalog_BuildFailure(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{err: errors.New("portal unreachable")}
	server := NewServer(builder, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "portal unreachable")
}

func TestServer_GetKeywords(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakeBuilder{cat: testCatalog()}, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/keywords", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"keywords":{"street":1,"imagery":1}}`, rec.Body.String())
}

func TestServer_PurgeCache(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakeBuilder{}, &fakePurger{dropped: 7}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/cache/purge", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"dropped":7}`, rec.Body.String())
}

func TestServer_CatalogPage(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakeBuilder{cat: testCatalog()}, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	require.Contains(t, body, "Roads")
	require.Contains(t, body, "FeatureServer")
	// Row tagging uses the substring policy: "street" appears in the Roads
	// description, so its row carries the tag.
	require.Contains(t, body, `<span class="tag">street</span>`)
}

func TestServer_APIKeyRequired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth = config.AuthConfig{Enabled: true, APIKey: "sekrit"}
	server := NewServer(&fakeBuilder{cat: testCatalog()}, &fakePurger{}, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	req.Header.Set("X-API-Key", "sekrit")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakeBuilder{}, &fakePurger{}, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
