package providers

import (
	"io"
	"log/slog"
	"strings"
	"unicode"
)

type options struct {
	baseURL string
	client  ClientConfig
	logger  *slog.Logger
}

// Option configures an HTTP provider.
type Option func(*options)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithClientConfig sets the HTTP client settings.
func WithClientConfig(cfg ClientConfig) Option {
	return func(o *options) {
		o.client = cfg
	}
}

// WithLogger sets the logger used to report why a lookup came back empty.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(defaultBaseURL string, opts []Option) options {
	o := options{
		baseURL: defaultBaseURL,
		client:  DefaultClientConfig(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stripFormatting drops punctuation and spaces from a postal code as echoed
// by an upstream, e.g. "01001-000" becomes "01001000".
func stripFormatting(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
}
