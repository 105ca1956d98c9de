package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-zipcache/zipcache"
)

func TestFixture(t *testing.T) {
	data := Fixture(t, "sample.json")
	if !strings.Contains(string(data), "01001000") {
		t.Errorf("unexpected fixture content %q", data)
	}
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "notes.txt", []byte("hello"))

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}

func TestWriteSeedFile(t *testing.T) {
	path := WriteSeedFile(t,
		zipcache.AddressFields{ZipCode: "01001000", City: "São Paulo", Region: "SP"},
		zipcache.AddressFields{ZipCode: "20040002", City: "Rio de Janeiro", Region: "RJ"},
	)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got []zipcache.AddressFields
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("seed file is not a JSON array: %v", err)
	}
	if len(got) != 2 || got[1].ZipCode != "20040002" {
		t.Errorf("unexpected seed entries %+v", got)
	}

	empty, err := os.ReadFile(WriteSeedFile(t))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.TrimSpace(string(empty)) != "[]" {
		t.Errorf("expected empty array, got %q", empty)
	}
}

func TestNewSQLiteDB_IsolatedPerCall(t *testing.T) {
	ctx := context.Background()
	first := NewSQLiteDB(t)
	second := NewSQLiteDB(t)

	if _, err := first.ExecContext(ctx, "CREATE TABLE marker (id INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	var n int
	err := second.NewSelect().
		ColumnExpr("count(*)").
		TableExpr("sqlite_master").
		Where("name = ?", "marker").
		Scan(ctx, &n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 0 {
		t.Error("expected databases to be isolated")
	}
}

func TestFakeProvider(t *testing.T) {
	p := NewFakeProvider("fake", zipcache.AddressFields{ZipCode: "01001000", City: "São Paulo"})
	hooked := 0
	p.OnResolve(func(context.Context, string) { hooked++ })

	if _, ok := p.Resolve(context.Background(), "99999999"); ok {
		t.Error("expected unknown code to be absent")
	}
	fields, ok := p.Resolve(context.Background(), "01001000")
	if !ok || fields.City != "São Paulo" {
		t.Errorf("unexpected result %+v, %v", fields, ok)
	}

	if p.CallCount() != 2 || hooked != 2 {
		t.Errorf("expected 2 calls and 2 hook runs, got %d and %d", p.CallCount(), hooked)
	}
	if calls := p.Calls(); calls[0] != "99999999" || calls[1] != "01001000" {
		t.Errorf("unexpected call order %v", calls)
	}
}
