package zipcache

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goliatone/go-zipcache/zipcache"

// Resolver serves zip codes from a Store and falls back to an ordered list of
// providers on a miss. It holds no mutable state of its own and is safe for
// concurrent use.
type Resolver struct {
	store           Store
	providers       []Provider
	logger          *slog.Logger
	tracer          trace.Tracer
	providerTimeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracerProvider sets the tracer provider used for resolution spans.
// Defaults to the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Resolver) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithProviderTimeout bounds every provider call with its own deadline on
// top of whatever the provider enforces. Zero disables it.
func WithProviderTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.providerTimeout = d
	}
}

// NewResolver builds a Resolver. Providers are consulted in the given order.
func NewResolver(store Store, providers []Provider, opts ...Option) *Resolver {
	r := &Resolver{
		store:     store,
		providers: append([]Provider(nil), providers...),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProviderNames returns the provider names in consultation order.
func (r *Resolver) ProviderNames() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Resolve returns the cached entry for zipCode, resolving and persisting it
// through the provider chain on a miss.
//
// Failures are either NotFound (no provider knows the code) or Unavailable
// (the store failed or ctx ended). A lost insert race is never surfaced: the
// winner's entry is read back and returned.
func (r *Resolver) Resolve(ctx context.Context, zipCode string) (ZipCacheEntry, error) {
	ctx, span := r.tracer.Start(ctx, "zipcache.Resolve",
		trace.WithAttributes(attribute.String("zip_code", zipCode)))
	defer span.End()

	logger := r.logger.With("zip_code", zipCode, "resolution_id", uuid.NewString())

	entry, err := r.store.Get(ctx, zipCode)
	if err == nil {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		logger.DebugContext(ctx, "zip code served from cache")
		return entry, nil
	}
	if !IsNotFound(err) {
		return ZipCacheEntry{}, r.fail(span, logger, unavailable(err, "zip cache lookup failed"))
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	for _, provider := range r.providers {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ZipCacheEntry{}, r.fail(span, logger, NewUnavailableError(ctxErr, "zip code resolution cancelled"))
		}

		fields, ok := r.consult(ctx, provider, zipCode)
		if !ok {
			logger.DebugContext(ctx, "provider reported absence", "provider", provider.Name())
			continue
		}

		candidate := NewEntry(zipCode, fields)
		if err := candidate.Validate(); err != nil {
			logger.WarnContext(ctx, "provider returned an incomplete address",
				"provider", provider.Name(), "error", err)
			continue
		}

		span.SetAttributes(attribute.String("provider", provider.Name()))
		logger.InfoContext(ctx, "zip code resolved by provider", "provider", provider.Name())
		return r.insertOrFetch(ctx, span, logger, candidate)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ZipCacheEntry{}, r.fail(span, logger, NewUnavailableError(ctxErr, "zip code resolution cancelled"))
	}
	return ZipCacheEntry{}, r.fail(span, logger, NewUnresolvedError(zipCode))
}

// insertOrFetch persists candidate. When a concurrent resolution inserted the
// same code first, the stored entry is read back and returned instead.
func (r *Resolver) insertOrFetch(ctx context.Context, span trace.Span, logger *slog.Logger, candidate ZipCacheEntry) (ZipCacheEntry, error) {
	stored, err := r.store.Insert(ctx, candidate)
	if err == nil {
		return stored, nil
	}
	if !IsDuplicateKey(err) {
		return ZipCacheEntry{}, r.fail(span, logger, unavailable(err, "zip cache insert failed"))
	}

	span.AddEvent("insert_conflict")
	logger.DebugContext(ctx, "entry inserted concurrently, reading it back")

	existing, err := r.store.Get(ctx, candidate.ZipCode)
	if err != nil {
		return ZipCacheEntry{}, r.fail(span, logger, unavailable(err, "zip cache re-read failed"))
	}
	return existing, nil
}

func (r *Resolver) consult(ctx context.Context, provider Provider, zipCode string) (AddressFields, bool) {
	ctx, span := r.tracer.Start(ctx, "zipcache.Provider",
		trace.WithAttributes(attribute.String("provider", provider.Name())))
	defer span.End()

	if r.providerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.providerTimeout)
		defer cancel()
	}

	fields, ok := provider.Resolve(ctx, zipCode)
	span.SetAttributes(attribute.Bool("resolved", ok))
	return fields, ok
}

// Seed inserts known entries directly, skipping codes that are already
// cached. It returns how many entries were inserted.
func (r *Resolver) Seed(ctx context.Context, entries ...AddressFields) (int, error) {
	inserted := 0
	for _, fields := range entries {
		entry := NewEntry(fields.ZipCode, fields)
		if err := entry.Validate(); err != nil {
			return inserted, errors.FromOzzoValidation(err, "invalid seed entry").
				WithMetadata(map[string]any{"zip_code": fields.ZipCode})
		}

		if _, err := r.store.Insert(ctx, entry); err != nil {
			if IsDuplicateKey(err) {
				r.logger.DebugContext(ctx, "seed entry already cached", "zip_code", entry.ZipCode)
				continue
			}
			return inserted, unavailable(err, "seed insert failed")
		}
		inserted++
	}
	return inserted, nil
}

func (r *Resolver) fail(span trace.Span, logger *slog.Logger, err *errors.Error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	errors.LogBySeverity(logger, err)
	return err
}

// unavailable classifies err as Unavailable unless a store already did.
func unavailable(err error, message string) *errors.Error {
	var e *errors.Error
	if IsUnavailable(err) && errors.As(err, &e) {
		return e
	}
	return NewUnavailableError(err, message)
}
