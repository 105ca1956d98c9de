package cacheinfra

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity is the maximum number of entries held in memory.
	Capacity int `json:"capacity"`

	// NumShards splits the cache to reduce lock contention.
	NumShards int `json:"num_shards"`

	// TTL bounds how long an entry is served from memory before the
	// backing store is read again.
	TTL time.Duration `json:"ttl"`

	// EvictionPercentage is the share of entries evicted when a shard is full.
	EvictionPercentage int `json:"eviction_percentage"`

	// EarlyRefresh enables background refreshes of hot keys. Nil disables it.
	EarlyRefresh *EarlyRefreshConfig `json:"early_refresh"`

	// EvictionInterval sets how often expired entries are swept.
	// Zero keeps the sturdyc default.
	EvictionInterval time.Duration `json:"eviction_interval"`
}

// EarlyRefreshConfig mirrors sturdyc.WithEarlyRefreshes.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration `json:"min_async_refresh_time"`
	MaxAsyncRefreshTime time.Duration `json:"max_async_refresh_time"`
	SyncRefreshTime     time.Duration `json:"sync_refresh_time"`
	RetryBaseDelay      time.Duration `json:"retry_base_delay"`
}

// DefaultConfig returns the defaults used for zip cache lookups. Entries are
// immutable once persisted, so the TTL is long and early refresh is off.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                time.Hour,
		EvictionPercentage: 10,
		EarlyRefresh:       nil,
		EvictionInterval:   0,
	}
}

// ToSturdycOptions converts the optional settings to sturdyc options.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return errors.FromOzzoValidation(err, "invalid cache configuration")
	}

	if c.EarlyRefresh == nil {
		return nil
	}

	er := *c.EarlyRefresh
	err = validation.ValidateStruct(&er,
		validation.Field(&er.MinAsyncRefreshTime, validation.Min(time.Duration(0))),
		validation.Field(&er.MaxAsyncRefreshTime, validation.Min(time.Duration(0))),
		validation.Field(&er.SyncRefreshTime, validation.Min(time.Duration(0))),
		validation.Field(&er.RetryBaseDelay, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return errors.FromOzzoValidation(validation.Errors{"early_refresh": err}, "invalid cache configuration")
	}
	return nil
}
