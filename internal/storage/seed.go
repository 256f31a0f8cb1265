package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cinebook/backend/internal/domain"
)

type seedFile struct {
	Bookings []*domain.BookingAggregate `json:"bookings"`
}

// SeedIfEmpty loads aggregates from a `{"bookings":[...]}` JSON file into the
// store when it holds nothing yet. Returns how many aggregates were written;
// zero with a nil error means the store was already populated.
func SeedIfEmpty(ctx context.Context, s Store, path string) (int, error) {
	existing, err := s.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("check store before seeding: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	n := 0
	for _, agg := range f.Bookings {
		if agg == nil || agg.UserID == "" || len(agg.Dates) == 0 {
			continue
		}
		if err := s.Save(ctx, agg); err != nil {
			return n, fmt.Errorf("seed aggregate %q: %w", agg.UserID, err)
		}
		n++
	}
	return n, nil
}
