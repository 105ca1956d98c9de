package providers

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-zipcache/zipcache"
)

// Factory builds a provider from shared options.
type Factory func(opts ...Option) zipcache.Provider

// Registry maps provider names to factories.
type Registry map[string]Factory

// DefaultRegistry knows every provider shipped in this package.
func DefaultRegistry() Registry {
	return Registry{
		ViaCEPName:    func(opts ...Option) zipcache.Provider { return NewViaCEP(opts...) },
		BrasilAPIName: func(opts ...Option) zipcache.Provider { return NewBrasilAPI(opts...) },
	}
}

// Build constructs providers in the given order. perProvider supplies extra
// options for a named provider, such as its base URL.
func (r Registry) Build(names []string, shared []Option, perProvider map[string][]Option) ([]zipcache.Provider, error) {
	out := make([]zipcache.Provider, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("provider %q listed more than once", name)
		}
		seen[name] = true

		factory, ok := r[name]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q", name)
		}

		opts := append(append([]Option(nil), shared...), perProvider[name]...)
		out = append(out, factory(opts...))
	}

	return out, nil
}
