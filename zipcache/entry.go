package zipcache

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// ZipCacheEntry is the persisted address record for a single postal code.
// Entries are written once and never updated by this package.
type ZipCacheEntry struct {
	bun.BaseModel `bun:"table:zip_cache_entries,alias:zce"`

	ZipCode      string `json:"zip_code" bun:"zip_code,pk"`
	Street       string `json:"street" bun:"street,notnull"`
	City         string `json:"city" bun:"city,notnull"`
	Region       string `json:"region" bun:"region,notnull"`
	Neighborhood string `json:"neighborhood,omitempty" bun:"neighborhood,nullzero"`
}

// AddressFields is the address shape produced by providers and handed to
// callers that want to build their own records.
type AddressFields struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

// NewEntry builds an entry keyed by zipCode from provider fields. The key is
// always the requested code, never the code echoed back by the provider.
func NewEntry(zipCode string, fields AddressFields) ZipCacheEntry {
	return ZipCacheEntry{
		ZipCode:      zipCode,
		Street:       fields.Street,
		City:         fields.City,
		Region:       fields.Region,
		Neighborhood: fields.Neighborhood,
	}
}

// Fields returns a copy of the entry as AddressFields.
func (e ZipCacheEntry) Fields() AddressFields {
	return AddressFields{
		ZipCode:      e.ZipCode,
		Street:       e.Street,
		City:         e.City,
		Region:       e.Region,
		Neighborhood: e.Neighborhood,
	}
}

// Validate checks the required columns. Street may be empty: upstream
// sources return no street for city-wide codes.
func (e ZipCacheEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ZipCode, validation.Required),
		validation.Field(&e.City, validation.Required),
		validation.Field(&e.Region, validation.Required),
	)
}
