package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	// Observations after repeated Init must not panic.
	ObservePortalRequest("https://gis.example.com/rest", "ok")
	ObserveCatalogBuild("ok", 250*time.Millisecond, 12, 40)
	ObserveCatalogBuild("error", time.Second, 0, 0)
	ObserveHTTPRequest("GET", "/v1/catalog", 200, 10*time.Millisecond)
}

func TestSanitizeHost(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://GIS.Example.com/arcgis/rest": "gis.example.com",
		"gis.example.com/path":                "gis.example.com",
		"://bad":                              "unknown",
		"":                                    "unknown",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeHost(in), "input %q", in)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	Init()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)

	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.NotEmpty(t, rec.Body.String())
}
