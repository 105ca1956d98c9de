package di

import (
	"context"
	"io"
	"log/slog"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/cache"
	"github.com/goliatone/go-zipcache/config"
	"github.com/goliatone/go-zipcache/providers"
	"github.com/goliatone/go-zipcache/store/memstore"
	"github.com/goliatone/go-zipcache/store/sqlstore"
	"github.com/goliatone/go-zipcache/storecache"
	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Container builds and owns the components behind a Resolver: the bun
// database, the store and its in-process cache, and the provider chain.
type Container struct {
	config config.Config
	logger *slog.Logger

	db     *bun.DB
	ownsDB bool

	sqlStore      *sqlstore.Store
	store         zipcache.Store
	cacheService  cache.CacheService[zipcache.ZipCacheEntry]
	keySerializer cache.KeySerializer
	providers     []zipcache.Provider
	resolver      *zipcache.Resolver

	tracerProvider trace.TracerProvider
}

// Option customizes a Container before its components are built.
type Option func(*Container)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDB uses an already opened database instead of opening one from the
// config. The caller keeps ownership and must close it.
func WithDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
	}
}

// WithProviders replaces the providers built from config. Calling it with
// no providers leaves the resolver serving the store only.
func WithProviders(ps ...zipcache.Provider) Option {
	return func(c *Container) {
		c.providers = append([]zipcache.Provider{}, ps...)
	}
}

// WithTracerProvider sets the tracer provider for resolution spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Container) {
		c.tracerProvider = tp
	}
}

// NewContainer validates cfg and wires the store, cache, providers and
// resolver. When the database is SQL backed and cfg.Database.Migrate is set,
// the entries table is created.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	base, err := c.buildStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.store = base

	if cfg.Cache.Enabled {
		svc, err := cache.NewCacheService[zipcache.ZipCacheEntry](cfg.Cache.ToCacheConfig())
		if err != nil {
			c.Close()
			return nil, err
		}
		c.cacheService = svc
		c.keySerializer = cache.NewDefaultKeySerializer()
		c.store = storecache.New(base, svc, c.keySerializer, storecache.WithLogger(c.logger))
	}

	if c.providers == nil {
		shared := []providers.Option{
			providers.WithClientConfig(cfg.Providers.ClientConfig()),
			providers.WithLogger(c.logger),
		}
		built, err := providers.DefaultRegistry().Build(cfg.Providers.Order, shared, cfg.Providers.BaseURLs())
		if err != nil {
			c.Close()
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to build providers")
		}
		c.providers = built
	}

	resolverOpts := []zipcache.Option{
		zipcache.WithLogger(c.logger),
		zipcache.WithProviderTimeout(cfg.Providers.Timeout),
	}
	if c.tracerProvider != nil {
		resolverOpts = append(resolverOpts, zipcache.WithTracerProvider(c.tracerProvider))
	}
	c.resolver = zipcache.NewResolver(c.store, c.providers, resolverOpts...)

	c.logger.Debug("zip cache container ready",
		"driver", cfg.Database.Driver,
		"cache_enabled", cfg.Cache.Enabled,
		"providers", c.resolver.ProviderNames(),
	)
	return c, nil
}

func (c *Container) buildStore(ctx context.Context) (zipcache.Store, error) {
	if c.config.Database.Driver == config.DriverMemory && c.db == nil {
		return memstore.New(), nil
	}

	if c.db == nil {
		db, err := sqlstore.Open(c.config.Database.Driver, c.config.Database.DSN)
		if err != nil {
			return nil, zipcache.NewUnavailableError(err, "failed to open database")
		}
		c.db = db
		c.ownsDB = true
	}

	c.sqlStore = sqlstore.New(c.db)
	if c.config.Database.Migrate {
		if err := c.sqlStore.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	return c.sqlStore, nil
}

// Resolver returns the wired resolver.
func (c *Container) Resolver() *zipcache.Resolver {
	return c.resolver
}

// Store returns the store the resolver uses, cached when the cache is enabled.
func (c *Container) Store() zipcache.Store {
	return c.store
}

// SQLStore returns the SQL store, or nil for the memory driver.
func (c *Container) SQLStore() *sqlstore.Store {
	return c.sqlStore
}

// CacheService returns the in-process cache, or nil when it is disabled.
func (c *Container) CacheService() cache.CacheService[zipcache.ZipCacheEntry] {
	return c.cacheService
}

// KeySerializer returns the cache key serializer, or nil when the cache is disabled.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Providers returns the providers in consultation order.
func (c *Container) Providers() []zipcache.Provider {
	return append([]zipcache.Provider(nil), c.providers...)
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Logger returns the container logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.db == nil || !c.ownsDB {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
