package zipcache

import "context"

// Provider resolves a postal code against an external address source.
//
// Resolve never fails: unknown codes, transport errors, timeouts and
// malformed upstream payloads are all reported as ok == false. Providers are
// expected to bound their own I/O.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, zipCode string) (fields AddressFields, ok bool)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, zipCode string) (AddressFields, bool)

// Resolve calls f.
func (f ProviderFunc) Resolve(ctx context.Context, zipCode string) (AddressFields, bool) {
	return f(ctx, zipCode)
}

// Name implements Provider.
func (f ProviderFunc) Name() string { return "func" }

type namedProvider struct {
	name string
	ProviderFunc
}

func (p namedProvider) Name() string { return p.name }

// NamedProvider returns a Provider with the given name backed by fn.
func NamedProvider(name string, fn ProviderFunc) Provider {
	return namedProvider{name: name, ProviderFunc: fn}
}
