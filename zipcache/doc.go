// Package zipcache resolves postal codes to address records, serving them
// from a durable Store and consulting an ordered list of Providers on a miss.
//
// A resolved address is inserted once and never refreshed. When two callers
// miss the same code at the same time, the store's uniqueness constraint
// picks a winner and the loser reads the winner's entry back, so every caller
// observes the same record.
//
// Basic usage:
//
//	store := memstore.New()
//	resolver := zipcache.NewResolver(store, []zipcache.Provider{
//		providers.NewViaCEP(),
//		providers.NewBrasilAPI(),
//	}, zipcache.WithLogger(logger))
//
//	entry, err := resolver.Resolve(ctx, "01001000")
//	switch {
//	case zipcache.IsNotFound(err):
//		// no provider knows this code
//	case zipcache.IsUnavailable(err):
//		// storage failed or ctx ended, retry later
//	}
//
// Errors are *errors.Error values from github.com/goliatone/go-errors and can
// be inspected with IsNotFound, IsUnresolved, IsDuplicateKey and IsUnavailable.
package zipcache
