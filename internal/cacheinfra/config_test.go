package cacheinfra

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}

	if cfg.NumShards != 64 {
		t.Errorf("expected NumShards to be 64, got %d", cfg.NumShards)
	}

	if cfg.TTL != time.Hour {
		t.Errorf("expected TTL to be 1 hour, got %v", cfg.TTL)
	}

	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}

	if cfg.EarlyRefresh != nil {
		t.Error("expected EarlyRefresh to be disabled")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "valid default config",
			mutate: func(*Config) {},
		},
		{
			name:      "zero capacity",
			mutate:    func(c *Config) { c.Capacity = 0 },
			wantField: "capacity",
		},
		{
			name:      "negative capacity",
			mutate:    func(c *Config) { c.Capacity = -5 },
			wantField: "capacity",
		},
		{
			name:      "zero shards",
			mutate:    func(c *Config) { c.NumShards = 0 },
			wantField: "num_shards",
		},
		{
			name:      "zero ttl",
			mutate:    func(c *Config) { c.TTL = 0 },
			wantField: "ttl",
		},
		{
			name:      "eviction percentage too high",
			mutate:    func(c *Config) { c.EvictionPercentage = 101 },
			wantField: "eviction_percentage",
		},
		{
			name:      "negative eviction interval",
			mutate:    func(c *Config) { c.EvictionInterval = -time.Second },
			wantField: "eviction_interval",
		},
		{
			name: "negative early refresh delay",
			mutate: func(c *Config) {
				c.EarlyRefresh = &EarlyRefreshConfig{
					MinAsyncRefreshTime: 10 * time.Second,
					MaxAsyncRefreshTime: 20 * time.Second,
					SyncRefreshTime:     30 * time.Second,
					RetryBaseDelay:      -1 * time.Millisecond,
				}
			},
			wantField: "early_refresh.retry_base_delay",
		},
		{
			name: "valid early refresh",
			mutate: func(c *Config) {
				c.EarlyRefresh = &EarlyRefreshConfig{
					MinAsyncRefreshTime: 10 * time.Second,
					MaxAsyncRefreshTime: 20 * time.Second,
					SyncRefreshTime:     30 * time.Second,
					RetryBaseDelay:      100 * time.Millisecond,
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.IsValidation(err) {
				t.Fatalf("expected validation category, got %v", err)
			}

			var verr *errors.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if _, ok := verr.ValidationMap()[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, verr.ValidationMap())
			}
		})
	}
}

func TestConfig_ToSturdycOptions(t *testing.T) {
	cfg := DefaultConfig()
	if n := len(cfg.ToSturdycOptions()); n != 0 {
		t.Errorf("expected no options for defaults, got %d", n)
	}

	cfg.EarlyRefresh = &EarlyRefreshConfig{
		MinAsyncRefreshTime: time.Second,
		MaxAsyncRefreshTime: 2 * time.Second,
		SyncRefreshTime:     3 * time.Second,
		RetryBaseDelay:      time.Millisecond,
	}
	cfg.EvictionInterval = time.Minute
	if n := len(cfg.ToSturdycOptions()); n != 2 {
		t.Errorf("expected 2 options, got %d", n)
	}
}

func TestNewSturdycService(t *testing.T) {
	if _, err := NewSturdycService[string](Config{}); err == nil {
		t.Fatal("expected error for empty config")
	} else if !strings.Contains(err.Error(), "invalid cache configuration") {
		t.Errorf("unexpected error message: %v", err)
	}

	svc, err := NewSturdycService[string](DefaultConfig())
	if err != nil {
		t.Fatalf("NewSturdycService() failed: %v", err)
	}

	ctx := context.Background()
	fetches := 0
	fetch := func(context.Context) (string, error) {
		fetches++
		return "São Paulo", nil
	}

	for range 3 {
		if _, err := svc.GetOrFetch(ctx, "zipcache::Get::01001000", fetch); err != nil {
			t.Fatalf("GetOrFetch() error: %v", err)
		}
	}
	if fetches != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetches)
	}

	if err := svc.Delete(ctx, "zipcache::Get::01001000"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.GetOrFetch(ctx, "zipcache::Get::01001000", fetch); err != nil {
		t.Fatalf("GetOrFetch() after delete error: %v", err)
	}
	if fetches != 2 {
		t.Errorf("expected a refetch after Delete, got %d fetches", fetches)
	}
}
