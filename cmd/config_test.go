package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"printshop/internal/pkg/errs"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PRICING_API_URL", "http://pricing:4000")
	t.Setenv("PRICING_TIMEOUT", "2s")
	t.Setenv("PRICING_DEBOUNCE_WINDOW", "0s")
	t.Setenv("AUTH_DEFAULT_ACTOR", "dev")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "http://pricing:4000", cfg.PricingAPIURL)
	assert.Equal(t, 2*time.Second, cfg.PricingTimeout)
	assert.Zero(t, cfg.PricingDebounceWindow)
	assert.Equal(t, "dev", cfg.AuthDefaultActor)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_YAMLUnderEnvironment(t *testing.T) {
	path := writeFile(t, "config.yaml", `
http_port: "7000"
pricing_api_url: http://from-yaml
order_backend_url: http://backend:3000
quote_session_ttl: 5m
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))
	t.Setenv("PRICING_API_URL", "http://from-env")
	t.Setenv("ORDER_BACKEND_URL", "")
	require.NoError(t, os.Unsetenv("ORDER_BACKEND_URL"))
	t.Setenv("QUOTE_SESSION_TTL", "")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "http://from-env", cfg.PricingAPIURL)
	assert.Equal(t, "http://backend:3000", cfg.OrderBackendURL)
	assert.Equal(t, 5*time.Minute, cfg.QuoteSessionTTL)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "KAFKA_ORDER_CHANGED_TOPIC=orders.changed\n")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("KAFKA_ORDER_CHANGED_TOPIC", "")
	require.NoError(t, os.Unsetenv("KAFKA_ORDER_CHANGED_TOPIC"))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "orders.changed", cfg.KafkaOrderChangedTopic)
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	assert.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		target error
	}{
		{name: "duration", key: "PRICING_TIMEOUT", value: "soon", target: errs.ErrValueIsInvalid},
		{name: "non-positive timeout", key: "ORDER_BACKEND_TIMEOUT", value: "0s", target: errs.ErrValueIsOutOfRange},
		{name: "negative debounce", key: "PRICING_DEBOUNCE_WINDOW", value: "-1s", target: errs.ErrValueIsOutOfRange},
		{name: "log level", key: "LOG_LEVEL", value: "chatty", target: errs.ErrValueIsInvalid},
		{name: "port", key: "HTTP_PORT", value: " ", target: errs.ErrValueIsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig("")

			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeFile(t, "config.yaml", "http_port: [unclosed"))

	_, err := LoadConfig("")

	assert.ErrorContains(t, err, "parse config file")
}

func TestConfig_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		slog  slog.Level
		echo  log.Lvl
	}{
		{level: "debug", slog: slog.LevelDebug, echo: log.DEBUG},
		{level: "INFO", slog: slog.LevelInfo, echo: log.INFO},
		{level: "warn", slog: slog.LevelWarn, echo: log.WARN},
		{level: "error", slog: slog.LevelError, echo: log.ERROR},
		{level: "", slog: slog.LevelInfo, echo: log.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}

			assert.Equal(t, tt.slog, cfg.SlogLevel())
			assert.Equal(t, tt.echo, cfg.EchoLogLevel())
		})
	}
}
