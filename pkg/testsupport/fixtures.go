package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-zipcache/zipcache"
)

// Fixture reads name from the testdata directory of the calling package.
func Fixture(t testing.TB, name string) []byte {
	t.Helper()

	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}
	return data
}

// WriteTempFile writes data to a file in a per-test temporary directory and
// returns its path.
func WriteTempFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSeedFile writes entries as the JSON array accepted by the seed
// command and returns the file path.
func WriteSeedFile(t testing.TB, entries ...zipcache.AddressFields) string {
	t.Helper()

	if entries == nil {
		entries = []zipcache.AddressFields{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode seed entries: %v", err)
	}
	return WriteTempFile(t, "seed.json", data)
}
