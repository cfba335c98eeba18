package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/pkg/config"
)

type sampleConfig struct {
	Name    string        `env:"NAME" envDefault:"mailer"`
	Port    int           `env:"PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Tags    []string      `env:"TAGS" envSeparator:","`
}

type requiredConfig struct {
	APIKey string `env:"API_KEY,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[sampleConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, "mailer", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Tags)
	})

	t.Run("values from environment map", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[sampleConfig](config.WithEnvironment(map[string]string{
			"NAME":    "hooks",
			"PORT":    "9000",
			"TIMEOUT": "1m",
			"TAGS":    "x,y",
		}))
		require.NoError(t, err)
		assert.Equal(t, "hooks", cfg.Name)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Equal(t, []string{"x", "y"}, cfg.Tags)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[sampleConfig](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_NAME": "prefixed", "NAME": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.Name)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[sampleConfig](config.WithEnvironment(map[string]string{"PORT": "abc"}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required if no default", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[sampleConfig](
			config.WithRequiredIfNoDefault(),
			config.WithEnvironment(map[string]string{}),
		)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
	})
	assert.NotPanics(t, func() {
		cfg := config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{"API_KEY": "k"}))
		assert.Equal(t, "k", cfg.APIKey)
	})
}

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"CFG_TEST_NAME", "CFG_TEST_PORT", "CFG_TEST_TAGS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	require.NoError(t, config.LoadEnv("testdata/.env.sample"))

	cfg, err := config.Load[sampleConfig](config.WithPrefix("CFG_TEST_"))
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)

	t.Cleanup(func() {
		for _, k := range []string{"CFG_TEST_NAME", "CFG_TEST_PORT", "CFG_TEST_TAGS"} {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoadEnvErrors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, config.LoadEnv(), config.ErrNoEnvFiles)
	require.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}
