package document

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/logger"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bookings.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := New(db, logger.Nop())
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestLoadMissingUser(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	agg, err := store.Load(ctx, "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if agg != nil {
		t.Fatalf("Load: expected nil for missing user, got %+v", agg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	in := &domain.BookingAggregate{
		UserID: "u1",
		Dates: []domain.DateEntry{
			{Date: "20250101", Movies: []string{"m1", "m2"}},
			{Date: "20250102", Movies: []string{"m3"}},
		},
	}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.UserID != "u1" {
		t.Fatalf("Load: unexpected aggregate %+v", got)
	}
	if len(got.Dates) != 2 || got.Dates[0].Date != "20250101" || got.Dates[1].Date != "20250102" {
		t.Fatalf("Load: unexpected dates %+v", got.Dates)
	}
	if len(got.Dates[0].Movies) != 2 || got.Dates[0].Movies[1] != "m2" {
		t.Fatalf("Load: unexpected movies %+v", got.Dates[0].Movies)
	}
}

func TestSaveReplacesDatesDocument(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, &domain.BookingAggregate{
		UserID: "u1",
		Dates:  []domain.DateEntry{{Date: "20250101", Movies: []string{"m1"}}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, &domain.BookingAggregate{
		UserID: "u1",
		Dates:  []domain.DateEntry{{Date: "20250202", Movies: []string{"m9"}}},
	}); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Dates) != 1 || got.Dates[0].Date != "20250202" {
		t.Fatalf("Save should replace the dates document, got %+v", got.Dates)
	}

	all, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d aggregates", len(all))
	}
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	deleted, err := store.Delete(ctx, "u1")
	if err != nil {
		t.Fatalf("Delete (missing): %v", err)
	}
	if deleted {
		t.Fatalf("Delete (missing): expected false")
	}

	if err := store.Save(ctx, &domain.BookingAggregate{
		UserID: "u1",
		Dates:  []domain.DateEntry{{Date: "20250101", Movies: []string{"m1"}}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	deleted, err = store.Delete(ctx, "u1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("Delete: expected true")
	}

	agg, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if agg != nil {
		t.Fatalf("Load after delete: expected nil, got %+v", agg)
	}
}

func TestLoadAllOmitsRowIdentifiers(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"u1", "u2"} {
		if err := store.Save(ctx, &domain.BookingAggregate{
			UserID: id,
			Dates:  []domain.DateEntry{{Date: "20250101", Movies: []string{"m1"}}},
		}); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	all, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll: expected 2 aggregates, got %d", len(all))
	}
	// The logical model is user id plus dates; the row id stays internal.
	for _, agg := range all {
		if agg.UserID == "" || len(agg.Dates) == 0 {
			t.Fatalf("LoadAll: incomplete aggregate %+v", agg)
		}
	}
}
