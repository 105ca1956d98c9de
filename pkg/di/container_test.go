package di

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/config"
	"github.com/goliatone/go-zipcache/pkg/testsupport"
	"github.com/goliatone/go-zipcache/store/memstore"
	"github.com/goliatone/go-zipcache/storecache"
	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/google/uuid"
)

var sePraca = zipcache.AddressFields{
	ZipCode:      "01001000",
	Street:       "Praça da Sé",
	City:         "São Paulo",
	Region:       "SP",
	Neighborhood: "Sé",
}

func memoryConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Database.Driver = config.DriverMemory
	cfg.Database.DSN = ""
	return cfg
}

func sqliteConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return cfg
}

func newTestContainer(t *testing.T, cfg config.Config, opts ...Option) *Container {
	t.Helper()
	container, err := NewContainer(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	t.Cleanup(func() {
		container.Close()
	})
	return container
}

func TestNewContainer_Memory(t *testing.T) {
	provider := testsupport.NewFakeProvider("fake", sePraca)
	container := newTestContainer(t, memoryConfig(), WithProviders(provider))

	if container.SQLStore() != nil {
		t.Error("memory driver should not open a SQL store")
	}
	if _, ok := container.Store().(*storecache.CachedStore); !ok {
		t.Errorf("expected cached store, got %T", container.Store())
	}
	if container.CacheService() == nil || container.KeySerializer() == nil {
		t.Error("cache components should be wired when the cache is enabled")
	}

	ctx := context.Background()
	for range 3 {
		entry, err := container.Resolver().Resolve(ctx, "01001000")
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if entry.Fields() != sePraca {
			t.Errorf("Resolve() = %+v", entry.Fields())
		}
	}
	if provider.CallCount() != 1 {
		t.Errorf("expected one provider call, got %d", provider.CallCount())
	}
}

func TestNewContainer_SQLite(t *testing.T) {
	provider := testsupport.NewFakeProvider("fake", sePraca)
	container := newTestContainer(t, sqliteConfig(), WithProviders(provider))

	ctx := context.Background()
	if _, err := container.Resolver().Resolve(ctx, "01001000"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	n, err := container.SQLStore().Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 persisted entry, got %d", n)
	}
}

func TestNewContainer_WithDB(t *testing.T) {
	db := testsupport.NewSQLiteDB(t)
	container := newTestContainer(t, sqliteConfig(), WithDB(db), WithProviders())

	if err := container.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Errorf("container closed a database it does not own: %v", err)
	}
	if _, err := container.SQLStore().Exists(context.Background(), "01001000"); err != nil {
		t.Errorf("table should have been migrated on the injected db: %v", err)
	}
}

func TestNewContainer_CacheDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Enabled = false
	container := newTestContainer(t, cfg, WithProviders())

	if _, ok := container.Store().(*memstore.Store); !ok {
		t.Errorf("expected bare memory store, got %T", container.Store())
	}
	if container.CacheService() != nil {
		t.Error("cache service should be nil when disabled")
	}
}

func TestNewContainer_ProvidersFromConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Providers.Order = []string{"brasilapi", "viacep"}
	container := newTestContainer(t, cfg)

	got := container.Resolver().ProviderNames()
	if !reflect.DeepEqual(got, []string{"brasilapi", "viacep"}) {
		t.Errorf("ProviderNames() = %v", got)
	}
	if len(container.Providers()) != 2 {
		t.Errorf("expected 2 providers, got %d", len(container.Providers()))
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "zero cache capacity", mutate: func(c *config.Config) { c.Cache.Capacity = 0 }},
		{name: "unknown driver", mutate: func(c *config.Config) { c.Database.Driver = "oracle" }},
		{name: "zero provider timeout", mutate: func(c *config.Config) { c.Providers.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := memoryConfig()
			tt.mutate(&cfg)

			_, err := NewContainer(context.Background(), cfg)
			if !errors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNewContainer_DuplicateProviderOrder(t *testing.T) {
	cfg := memoryConfig()
	cfg.Providers.Order = []string{"viacep", "viacep"}

	_, err := NewContainer(context.Background(), cfg)
	if !errors.IsCategory(err, errors.CategoryBadInput) {
		t.Errorf("expected bad input error, got %v", err)
	}
}

func TestContainerSingletonBehavior(t *testing.T) {
	container := newTestContainer(t, memoryConfig(), WithProviders())

	if container.CacheService() != container.CacheService() {
		t.Error("CacheService() should return the same instance")
	}
	if container.Resolver() != container.Resolver() {
		t.Error("Resolver() should return the same instance")
	}
	if container.Config().Providers.Timeout != 3*time.Second {
		t.Errorf("unexpected config %+v", container.Config().Providers)
	}
}

func TestKeySerializerIntegration(t *testing.T) {
	container := newTestContainer(t, memoryConfig(), WithProviders())

	if got := container.KeySerializer().SerializeKey("Get", "01001000"); got != "zipcache::Get::01001000" {
		t.Errorf("unexpected cache key %q", got)
	}
}
