package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single provider lookup, limiter wait included.
const DefaultTimeout = 3 * time.Second

// maxBodySize caps upstream payloads; address responses are tiny.
const maxBodySize = 64 << 10

// ClientConfig configures the HTTP client shared by the HTTP providers.
type ClientConfig struct {
	// Timeout bounds each lookup. Zero uses DefaultTimeout.
	Timeout time.Duration
	// RatePerSecond limits outgoing requests. Zero disables limiting.
	RatePerSecond float64
	// Burst is the limiter bucket size. Values below 1 are treated as 1.
	Burst int
	// UserAgent is sent with every request when set.
	UserAgent string
	// Transport is the base round tripper, wrapped with otelhttp.
	// Nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// DefaultClientConfig returns the client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   DefaultTimeout,
		UserAgent: "go-zipcache",
	}
}

type httpClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	userAgent string
}

func newHTTPClient(cfg ClientConfig) *httpClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &httpClient{
		client: &http.Client{
			Transport: otelhttp.NewTransport(base),
			Timeout:   timeout,
		},
		timeout:   timeout,
		userAgent: cfg.UserAgent,
	}

	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return c
}

// getJSON issues a GET and decodes a 2xx body into dst. The returned status
// is zero when no response was received.
func (c *httpClient) getJSON(ctx context.Context, endpoint string, dst any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, errors.Wrap(err, errors.CategoryRateLimit, "provider rate limit wait aborted")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryBadInput, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryExternal, "provider request failed")
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodySize)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, body)
		return resp.StatusCode, errors.New(fmt.Sprintf("provider responded with status %d", resp.StatusCode), errors.CategoryExternal).
			WithCode(resp.StatusCode)
	}

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return resp.StatusCode, errors.Wrap(err, errors.CategoryExternal, "malformed provider response")
	}
	return resp.StatusCode, nil
}

// logAbsence records why a provider reported absence.
func logAbsence(ctx context.Context, logger *slog.Logger, provider, zipCode string, err error) {
	attrs := []any{"provider", provider, "zip_code", zipCode}
	for _, attr := range errors.ToSlogAttributes(err) {
		attrs = append(attrs, attr)
	}
	logger.DebugContext(ctx, err.Error(), attrs...)
}
