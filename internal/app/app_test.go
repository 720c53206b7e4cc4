package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dannyfullextent/explorer/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: 8080, TimeoutSeconds: 30},
		Portal: config.PortalConfig{
			BaseURL:               "https://gis.example.com/arcgis/rest/services",
			UserAgent:             "explorer-test/0.1",
			RequestTimeoutSeconds: 5,
			Concurrency:           2,
		},
		Enrich:   config.EnrichConfig{Concurrency: 4, CacheLookup: true},
		Keywords: config.KeywordsConfig{Tokenizer: "nounphrase", MaxShare: 0.8},
		Logging:  config.LoggingConfig{Development: true},
	}
}

func TestNew_BuildsServices(t *testing.T) {
	cfg := testConfig()

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Logger())
	require.NotNil(t, a.Details())
	require.Equal(t, 0, a.Details().Len())
	require.Equal(t, cfg.Portal.BaseURL, a.Config().Portal.BaseURL)
}

func TestNew_StemTokenizerSelected(t *testing.T) {
	cfg := testConfig()
	cfg.Keywords.Tokenizer = "stem"

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()
}
