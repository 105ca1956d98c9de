package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type entry struct {
	Code string
	City string
}

func TestNewCacheService_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 0

	if _, err := NewCacheService[entry](cfg); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestCacheService_GetOrFetch(t *testing.T) {
	svc, err := NewCacheService[entry](DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService() failed: %v", err)
	}

	ctx := context.Background()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (entry, error) {
		calls.Add(1)
		return entry{Code: "01001000", City: "São Paulo"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := svc.GetOrFetch(ctx, "zipcache::Get::01001000", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch() error: %v", err)
		}
		if got.City != "São Paulo" {
			t.Errorf("expected City São Paulo, got %q", got.City)
		}
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("expected fetch to run once, ran %d times", n)
	}
}

func TestCacheService_ErrorsAreNotCached(t *testing.T) {
	svc, err := NewCacheService[entry](DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService() failed: %v", err)
	}

	ctx := context.Background()
	key := "zipcache::Get::99999999"
	missing := errors.New("not cached")

	if _, err := svc.GetOrFetch(ctx, key, func(context.Context) (entry, error) {
		return entry{}, missing
	}); !errors.Is(err, missing) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	got, err := svc.GetOrFetch(ctx, key, func(context.Context) (entry, error) {
		return entry{Code: "99999999", City: "Campinas"}, nil
	})
	if err != nil {
		t.Fatalf("second GetOrFetch() error: %v", err)
	}
	if got.City != "Campinas" {
		t.Errorf("expected fresh value after failed fetch, got %+v", got)
	}
}

func TestCacheService_Delete(t *testing.T) {
	svc, err := NewCacheService[entry](DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService() failed: %v", err)
	}

	ctx := context.Background()
	key := "zipcache::Get::01001000"
	var calls atomic.Int32
	fetch := func(context.Context) (entry, error) {
		calls.Add(1)
		return entry{Code: "01001000"}, nil
	}

	if _, err := svc.GetOrFetch(ctx, key, fetch); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if err := svc.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.GetOrFetch(ctx, key, fetch); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}

	if n := calls.Load(); n != 2 {
		t.Errorf("expected fetch to run again after Delete, ran %d times", n)
	}
}
