package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-zipcache/zipcache"
)

// FakeProvider is a zipcache.Provider serving fixed answers and recording
// every zip code it was asked for.
type FakeProvider struct {
	name string

	mu      sync.Mutex
	calls   []string
	answers map[string]zipcache.AddressFields
	hook    func(ctx context.Context, zipCode string)
}

// NewFakeProvider returns a provider that knows the given addresses.
func NewFakeProvider(name string, known ...zipcache.AddressFields) *FakeProvider {
	p := &FakeProvider{
		name:    name,
		answers: make(map[string]zipcache.AddressFields),
	}
	for _, f := range known {
		p.answers[f.ZipCode] = f
	}
	return p
}

// OnResolve installs a hook that runs before every lookup, e.g. to block
// until other goroutines reach the provider.
func (p *FakeProvider) OnResolve(hook func(ctx context.Context, zipCode string)) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hook = hook
	return p
}

func (p *FakeProvider) Name() string { return p.name }

func (p *FakeProvider) Resolve(ctx context.Context, zipCode string) (zipcache.AddressFields, bool) {
	p.mu.Lock()
	p.calls = append(p.calls, zipCode)
	hook := p.hook
	fields, ok := p.answers[zipCode]
	p.mu.Unlock()

	if hook != nil {
		hook(ctx, zipCode)
	}
	if ctx.Err() != nil {
		return zipcache.AddressFields{}, false
	}
	return fields, ok
}

// Calls returns the zip codes this provider was asked for, in order.
func (p *FakeProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// CallCount returns how many lookups were made.
func (p *FakeProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
