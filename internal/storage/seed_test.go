package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cinebook/backend/internal/pkg/logger"
	"github.com/cinebook/backend/internal/storage"
	filestore "github.com/cinebook/backend/internal/storage/file"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	store := filestore.New(filepath.Join(t.TempDir(), "bookings.json"), logger.Nop())

	seed := writeSeedFile(t, `{"bookings":[
		{"userid":"u1","dates":[{"date":"20250101","movies":["m1"]}]},
		{"userid":"","dates":[{"date":"20250101","movies":["m1"]}]},
		{"userid":"u2","dates":[]},
		{"userid":"u3","dates":[{"date":"20250102","movies":["m2","m3"]}]}
	]}`)

	n, err := storage.SeedIfEmpty(ctx, store, seed)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Aggregates without a userid or without dates are skipped.
	if n != 2 {
		t.Fatalf("expected 2 seeded aggregates, got %d", n)
	}

	all, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 aggregates in store, got %d", len(all))
	}

	// Second run is a no-op: the store is already populated.
	n, err = storage.SeedIfEmpty(ctx, store, seed)
	if err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no-op re-seed, got %d", n)
	}
}

func TestSeedIfEmptyMissingFile(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "bookings.json"), logger.Nop())
	if _, err := storage.SeedIfEmpty(context.Background(), store, filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}
