// Package config loads go-zipcache settings from ZIPCACHE_* environment
// variables on top of DefaultConfig.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/cache"
	"github.com/goliatone/go-zipcache/providers"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "ZIPCACHE_"

// DriverMemory selects the in-process store instead of a database.
const DriverMemory = "memory"

// Supported values for LogConfig.Format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the application configuration.
type Config struct {
	Database  DatabaseConfig  `envPrefix:"DB_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Providers ProvidersConfig `envPrefix:"PROVIDER_"`
	Log       LogConfig       `envPrefix:"LOG_"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	// Driver is sqlite3, postgres or memory.
	Driver string `env:"DRIVER"`
	DSN    string `env:"DSN"`
	// Migrate creates the entries table on startup.
	Migrate bool `env:"MIGRATE"`
}

// CacheConfig controls the in-process read-through cache in front of the store.
type CacheConfig struct {
	Enabled            bool          `env:"ENABLED"`
	Capacity           int           `env:"CAPACITY"`
	NumShards          int           `env:"SHARDS"`
	TTL                time.Duration `env:"TTL"`
	EvictionPercentage int           `env:"EVICTION_PERCENTAGE"`
}

// ProvidersConfig lists the providers in consultation order and their HTTP
// client settings.
type ProvidersConfig struct {
	Order         []string      `env:"ORDER" envSeparator:","`
	Timeout       time.Duration `env:"TIMEOUT"`
	RatePerSecond float64       `env:"RATE"`
	Burst         int           `env:"BURST"`
	UserAgent     string        `env:"USER_AGENT"`
	ViaCEPURL     string        `env:"VIACEP_URL"`
	BrasilAPIURL  string        `env:"BRASILAPI_URL"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `env:"LEVEL"`
	Format string `env:"FORMAT"`
}

// DefaultConfig returns a config using a local sqlite file and both public
// providers.
func DefaultConfig() Config {
	cacheDefaults := cache.DefaultConfig()
	return Config{
		Database: DatabaseConfig{
			Driver:  "sqlite3",
			DSN:     "file:zipcache.db?cache=shared",
			Migrate: true,
		},
		Cache: CacheConfig{
			Enabled:            true,
			Capacity:           cacheDefaults.Capacity,
			NumShards:          cacheDefaults.NumShards,
			TTL:                cacheDefaults.TTL,
			EvictionPercentage: cacheDefaults.EvictionPercentage,
		},
		Providers: ProvidersConfig{
			Order:        []string{providers.ViaCEPName, providers.BrasilAPIName},
			Timeout:      providers.DefaultTimeout,
			Burst:        1,
			UserAgent:    "go-zipcache",
			ViaCEPURL:    providers.ViaCEPBaseURL,
			BrasilAPIURL: providers.BrasilAPIBaseURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// Load reads the process environment over DefaultConfig and validates it.
func Load() (Config, error) {
	return load(env.Options{Prefix: EnvPrefix})
}

// LoadFrom behaves like Load but reads from the given variables instead of
// the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func load(opts env.Options) (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment").
			WithTextCode("CONFIG_PARSE")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	db := c.Database
	err := validation.ValidateStruct(&db,
		validation.Field(&db.Driver, validation.Required,
			validation.In("sqlite3", "postgres", DriverMemory)),
		validation.Field(&db.DSN, validation.When(db.Driver != DriverMemory, validation.Required)),
	)
	if err != nil {
		return errors.FromOzzoValidation(validation.Errors{"database": err}, "invalid configuration")
	}

	if c.Cache.Enabled {
		if err := c.Cache.ToCacheConfig().Validate(); err != nil {
			return err
		}
	}

	known := []string{providers.ViaCEPName, providers.BrasilAPIName}
	p := c.Providers
	err = validation.ValidateStruct(&p,
		validation.Field(&p.Order, validation.Each(validation.By(normalizedIn(known...)))),
		validation.Field(&p.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&p.RatePerSecond, validation.Min(0.0)),
		validation.Field(&p.Burst, validation.When(p.RatePerSecond > 0, validation.Required, validation.Min(1))),
		validation.Field(&p.ViaCEPURL, validation.Required),
		validation.Field(&p.BrasilAPIURL, validation.Required),
	)
	if err != nil {
		return errors.FromOzzoValidation(validation.Errors{"providers": err}, "invalid configuration")
	}

	l := c.Log
	err = validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.By(normalizedIn("debug", "info", "warn", "error"))),
		validation.Field(&l.Format, validation.By(normalizedIn(LogFormatText, LogFormatJSON))),
	)
	if err != nil {
		return errors.FromOzzoValidation(validation.Errors{"log": err}, "invalid configuration")
	}
	return nil
}

// ToCacheConfig converts the env settings to the cache package config.
func (c CacheConfig) ToCacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.Capacity = c.Capacity
	cfg.NumShards = c.NumShards
	cfg.TTL = c.TTL
	cfg.EvictionPercentage = c.EvictionPercentage
	return cfg
}

// ClientConfig converts the env settings to the provider HTTP client config.
func (c ProvidersConfig) ClientConfig() providers.ClientConfig {
	cfg := providers.DefaultClientConfig()
	cfg.Timeout = c.Timeout
	cfg.RatePerSecond = c.RatePerSecond
	cfg.Burst = c.Burst
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	return cfg
}

// BaseURLs returns per provider base URL options keyed by provider name.
func (c ProvidersConfig) BaseURLs() map[string][]providers.Option {
	return map[string][]providers.Option{
		providers.ViaCEPName:    {providers.WithBaseURL(c.ViaCEPURL)},
		providers.BrasilAPIName: {providers.WithBaseURL(c.BrasilAPIURL)},
	}
}

// SlogLevel maps Level to a slog level. Unknown values map to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch normalizeName(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if normalizeName(c.Format) == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizedIn accepts a string matching one of allowed after trimming and
// lowercasing. Empty values pass, as with validation.In.
func normalizedIn(allowed ...string) validation.RuleFunc {
	values := make([]any, len(allowed))
	for i, a := range allowed {
		values[i] = a
	}
	return func(v any) error {
		s, _ := v.(string)
		return validation.Validate(normalizeName(s), validation.In(values...))
	}
}
