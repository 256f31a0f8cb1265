package storage

import (
	"context"

	"github.com/cinebook/backend/internal/domain"
)

// Store is the aggregate persistence contract. Both backends (document rows
// and the flat JSON snapshot) satisfy identical observable semantics; the
// implementation is chosen once at construction and business code never
// branches on it.
type Store interface {
	// Load returns the aggregate for userID, or (nil, nil) when absent.
	Load(ctx context.Context, userID string) (*domain.BookingAggregate, error)
	// Save replaces the stored aggregate wholesale (read-modify-write).
	Save(ctx context.Context, agg *domain.BookingAggregate) error
	// Delete removes the aggregate and reports whether one existed.
	Delete(ctx context.Context, userID string) (bool, error)
	// LoadAll returns every aggregate in insertion order.
	LoadAll(ctx context.Context) ([]*domain.BookingAggregate, error)
}
