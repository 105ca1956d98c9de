package sqlstore

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// identifierColumn is the natural key used by GetByIdentifier.
const identifierColumn = "zip_code"

// NewEntryRepository returns a go-repository-bun repository for zip cache
// entries. Entries have no surrogate id, so the id handlers are inert and
// lookups go through the zip_code identifier column.
func NewEntryRepository(db *bun.DB) repository.Repository[*zipcache.ZipCacheEntry] {
	return repository.NewRepository[*zipcache.ZipCacheEntry](db, EntryHandlers())
}

// EntryHandlers describes ZipCacheEntry to go-repository-bun.
func EntryHandlers() repository.ModelHandlers[*zipcache.ZipCacheEntry] {
	return repository.ModelHandlers[*zipcache.ZipCacheEntry]{
		NewRecord: func() *zipcache.ZipCacheEntry {
			return &zipcache.ZipCacheEntry{}
		},
		GetID: func(*zipcache.ZipCacheEntry) uuid.UUID {
			return uuid.Nil
		},
		SetID: func(*zipcache.ZipCacheEntry, uuid.UUID) {},
		GetIdentifier: func() string {
			return identifierColumn
		},
	}
}
