// Package memstore is an in-process zipcache.Store backed by a concurrent map.
// Uniqueness is enforced with an atomic load-or-store, so it honours the same
// insert contract as the SQL store. Entries do not survive a restart.
package memstore

import (
	"context"

	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/puzpuzpuz/xsync/v3"
)

var _ zipcache.Store = (*Store)(nil)

// Store keeps entries in memory keyed by zip code.
type Store struct {
	entries *xsync.MapOf[string, zipcache.ZipCacheEntry]
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: xsync.NewMapOf[string, zipcache.ZipCacheEntry]()}
}

func (s *Store) Exists(ctx context.Context, zipCode string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, zipcache.NewUnavailableError(err, "memory store lookup cancelled")
	}
	_, ok := s.entries.Load(zipCode)
	return ok, nil
}

func (s *Store) Get(ctx context.Context, zipCode string) (zipcache.ZipCacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return zipcache.ZipCacheEntry{}, zipcache.NewUnavailableError(err, "memory store lookup cancelled")
	}
	entry, ok := s.entries.Load(zipCode)
	if !ok {
		return zipcache.ZipCacheEntry{}, zipcache.NewNotCachedError(zipCode)
	}
	return entry, nil
}

func (s *Store) Insert(ctx context.Context, entry zipcache.ZipCacheEntry) (zipcache.ZipCacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return zipcache.ZipCacheEntry{}, zipcache.NewUnavailableError(err, "memory store insert cancelled")
	}
	if _, loaded := s.entries.LoadOrStore(entry.ZipCode, entry); loaded {
		return zipcache.ZipCacheEntry{}, zipcache.NewDuplicateKeyError(entry.ZipCode, nil)
	}
	return entry, nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return s.entries.Size()
}

// Entries returns a snapshot of all stored entries.
func (s *Store) Entries() []zipcache.ZipCacheEntry {
	out := make([]zipcache.ZipCacheEntry, 0, s.entries.Size())
	s.entries.Range(func(_ string, entry zipcache.ZipCacheEntry) bool {
		out = append(out, entry)
		return true
	})
	return out
}
