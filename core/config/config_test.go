package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docview/pagestream/core/config"
)

// Each test uses its own config type: the loader caches per type for the
// process lifetime, so sharing a type across tests would leak state.

func TestLoad_ParsesEnvironment(t *testing.T) {
	type streamConfig struct {
		URL            string        `env:"TEST_STREAM_URL"`
		ConnectTimeout time.Duration `env:"TEST_STREAM_CONNECT_TIMEOUT" envDefault:"30s"`
	}

	t.Setenv("TEST_STREAM_URL", "http://converter.local/stream/doc-1")

	var cfg streamConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://converter.local/stream/doc-1", cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout, "default applies when unset")
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "initial", first.Value)

	// A changed environment must not affect an already loaded type.
	t.Setenv("TEST_CACHED_VALUE", "changed")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type requiredConfig struct {
		Token string `env:"TEST_REQUIRED_TOKEN,required"`
	}

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requiredConfig")
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type mustConfig struct {
		Token string `env:"TEST_MUST_TOKEN,required"`
	}

	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}
