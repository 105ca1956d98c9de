package sqlstore

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/uptrace/bun"
)

var _ zipcache.Store = (*Store)(nil)

// Store persists zip cache entries in a relational table whose primary key is
// the zip code.
type Store struct {
	db   *bun.DB
	repo repository.Repository[*zipcache.ZipCacheEntry]
}

// New returns a Store backed by db using the default entry repository.
func New(db *bun.DB) *Store {
	return NewWithRepository(db, NewEntryRepository(db))
}

// NewWithRepository returns a Store that reads and writes through repo.
func NewWithRepository(db *bun.DB, repo repository.Repository[*zipcache.ZipCacheEntry]) *Store {
	return &Store{db: db, repo: repo}
}

// Migrate creates the entries table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*zipcache.ZipCacheEntry)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return zipcache.NewUnavailableError(err, "failed to create zip cache table")
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, zipCode string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*zipcache.ZipCacheEntry)(nil)).
		Where("?TableAlias.zip_code = ?", zipCode).
		Exists(ctx)
	if err != nil {
		return false, zipcache.NewUnavailableError(err, "zip cache lookup failed")
	}
	return exists, nil
}

func (s *Store) Get(ctx context.Context, zipCode string) (zipcache.ZipCacheEntry, error) {
	record, err := s.repo.GetByIdentifier(ctx, zipCode)
	if err != nil {
		if isNoRows(err) {
			return zipcache.ZipCacheEntry{}, zipcache.NewNotCachedError(zipCode)
		}
		return zipcache.ZipCacheEntry{}, zipcache.NewUnavailableError(err, "zip cache lookup failed")
	}
	if record == nil {
		return zipcache.ZipCacheEntry{}, zipcache.NewNotCachedError(zipCode)
	}
	return *record, nil
}

// Insert writes a new entry. The Exists check only short-circuits the common
// case; the primary key constraint is what rejects concurrent inserts.
func (s *Store) Insert(ctx context.Context, entry zipcache.ZipCacheEntry) (zipcache.ZipCacheEntry, error) {
	exists, err := s.Exists(ctx, entry.ZipCode)
	if err != nil {
		return zipcache.ZipCacheEntry{}, err
	}
	if exists {
		return zipcache.ZipCacheEntry{}, zipcache.NewDuplicateKeyError(entry.ZipCode, nil)
	}

	record := entry
	created, err := s.repo.Create(ctx, &record)
	if err != nil {
		if isDuplicateKey(err) {
			return zipcache.ZipCacheEntry{}, zipcache.NewDuplicateKeyError(entry.ZipCode, err)
		}
		return zipcache.ZipCacheEntry{}, zipcache.NewUnavailableError(err, "zip cache insert failed")
	}
	if created == nil {
		return record, nil
	}
	return *created, nil
}

// isNoRows reports a missing row. The repository maps sql.ErrNoRows to its
// own not found category and drops the original error from the chain.
func isNoRows(err error) bool {
	return repository.IsRecordNotFound(err) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.HasCategory(err, errors.CategoryNotFound)
}

// Count returns how many entries are cached.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, zipcache.NewUnavailableError(err, "zip cache count failed")
	}
	return n, nil
}
