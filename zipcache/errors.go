package zipcache

import (
	"github.com/goliatone/go-errors"
)

// Error categories used by stores and the resolver.
var (
	CategoryDuplicateKey = errors.CategoryConflict.Extend("duplicate_key")
	CategoryUnavailable  = errors.Category("unavailable")
)

// Text codes attached to errors produced by this package.
const (
	TextCodeNotCached        = "ZIP_NOT_CACHED"
	TextCodeUnresolved       = "ZIP_UNRESOLVED"
	TextCodeDuplicate        = "ZIP_DUPLICATE"
	TextCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// NewNotCachedError reports a store miss for zipCode.
func NewNotCachedError(zipCode string) *errors.Error {
	return errors.New("zip code is not cached", errors.CategoryNotFound).
		WithTextCode(TextCodeNotCached).
		WithSeverity(errors.SeverityInfo).
		WithMetadata(map[string]any{"zip_code": zipCode})
}

// NewUnresolvedError reports that no provider could resolve zipCode.
func NewUnresolvedError(zipCode string) *errors.Error {
	return errors.New("no provider could resolve this postal code", errors.CategoryNotFound).
		WithTextCode(TextCodeUnresolved).
		WithSeverity(errors.SeverityWarning).
		WithMetadata(map[string]any{"zip_code": zipCode})
}

// NewDuplicateKeyError reports an insert rejected because zipCode already
// has an entry. source is the driver error, if any.
func NewDuplicateKeyError(zipCode string, source error) *errors.Error {
	err := errors.New("an entry for this zip code already exists", CategoryDuplicateKey).
		WithTextCode(TextCodeDuplicate).
		WithSeverity(errors.SeverityInfo).
		WithMetadata(map[string]any{"zip_code": zipCode})
	err.Source = source
	return err
}

// NewUnavailableError wraps a storage or context failure.
func NewUnavailableError(source error, message string) *errors.Error {
	err := errors.New(message, CategoryUnavailable).
		WithTextCode(TextCodeStoreUnavailable)
	err.Source = source
	return err
}

// IsNotFound reports whether err is a store miss or an unresolved zip code.
func IsNotFound(err error) bool {
	return errors.IsCategory(err, errors.CategoryNotFound)
}

// IsUnresolved reports whether err means every provider reported absence.
func IsUnresolved(err error) bool {
	return hasTextCode(err, TextCodeUnresolved)
}

// IsDuplicateKey reports whether err is a rejected duplicate insert.
func IsDuplicateKey(err error) bool {
	return errors.IsCategory(err, CategoryDuplicateKey)
}

// IsUnavailable reports whether err is a storage or context failure.
func IsUnavailable(err error) bool {
	return errors.IsCategory(err, CategoryUnavailable)
}

func hasTextCode(err error, code string) bool {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.TextCode == code
	}
	return false
}
