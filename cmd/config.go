package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"printshop/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort string `yaml:"http_port"`

	PricingAPIURL         string        `yaml:"pricing_api_url"`
	PricingTimeout        time.Duration `yaml:"pricing_timeout"`
	PricingDebounceWindow time.Duration `yaml:"pricing_debounce_window"`
	PricingHealthSchedule string        `yaml:"pricing_health_schedule"`

	OrderBackendURL     string        `yaml:"order_backend_url"`
	OrderBackendTimeout time.Duration `yaml:"order_backend_timeout"`

	KafkaHost              string `yaml:"kafka_host"`
	KafkaOrderChangedTopic string `yaml:"kafka_order_changed_topic"`

	AuthDefaultActor string        `yaml:"auth_default_actor"`
	QuoteSessionTTL  time.Duration `yaml:"quote_session_ttl"`
	LogLevel         string        `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		HTTPPort:               "8080",
		PricingTimeout:         5 * time.Second,
		PricingDebounceWindow:  300 * time.Millisecond,
		PricingHealthSchedule:  "*/30 * * * * *",
		OrderBackendTimeout:    10 * time.Second,
		KafkaOrderChangedTopic: "order.status.changed",
		QuoteSessionTTL:        15 * time.Minute,
		LogLevel:               "info",
	}
}

// LoadConfig reads envFile into the environment when it exists, then layers
// the YAML file named by CONFIG_FILE and finally the environment over the
// defaults. Variables already set in the process win over envFile.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HTTP_PORT":                 &c.HTTPPort,
		"PRICING_API_URL":           &c.PricingAPIURL,
		"PRICING_HEALTH_SCHEDULE":   &c.PricingHealthSchedule,
		"ORDER_BACKEND_URL":         &c.OrderBackendURL,
		"KAFKA_HOST":                &c.KafkaHost,
		"KAFKA_ORDER_CHANGED_TOPIC": &c.KafkaOrderChangedTopic,
		"AUTH_DEFAULT_ACTOR":        &c.AuthDefaultActor,
		"LOG_LEVEL":                 &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	durations := map[string]*time.Duration{
		"PRICING_TIMEOUT":         &c.PricingTimeout,
		"PRICING_DEBOUNCE_WINDOW": &c.PricingDebounceWindow,
		"ORDER_BACKEND_TIMEOUT":   &c.OrderBackendTimeout,
		"QUOTE_SESSION_TTL":       &c.QuoteSessionTTL,
	}
	var err error
	for key, dst := range durations {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, parseErr := time.ParseDuration(strings.TrimSpace(v))
		if parseErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(key, parseErr))
			continue
		}
		*dst = d
	}
	return err
}

// Validate checks the values every command needs. Service URLs stay
// optional here; the components that call them reject an empty URL.
func (c Config) Validate() error {
	var err error
	if c.HTTPPort == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.PricingTimeout <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("PRICING_TIMEOUT", c.PricingTimeout, "1ns", nil))
	}
	if c.PricingDebounceWindow < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("PRICING_DEBOUNCE_WINDOW", c.PricingDebounceWindow, 0, nil))
	}
	if c.OrderBackendTimeout <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("ORDER_BACKEND_TIMEOUT", c.OrderBackendTimeout, "1ns", nil))
	}
	if c.QuoteSessionTTL <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("QUOTE_SESSION_TTL", c.QuoteSessionTTL, "1ns", nil))
	}
	var level slog.Level
	if levelErr := level.UnmarshalText([]byte(c.LogLevel)); levelErr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", levelErr))
	}
	return err
}

// SlogLevel is LogLevel for the service logger; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// EchoLogLevel is LogLevel for echo's own logger.
func (c Config) EchoLogLevel() log.Lvl {
	switch l := c.SlogLevel(); {
	case l <= slog.LevelDebug:
		return log.DEBUG
	case l <= slog.LevelInfo:
		return log.INFO
	case l <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
