package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/logger"
)

// Store keeps the whole collection in one JSON document on disk:
// {"bookings":[{userid, dates:[{date, movies:[...]}]}]}. Every mutation
// rewrites the file. A process-local mutex serializes writers; concurrent
// processes sharing the file still race, which is an accepted limitation of
// this backend.
type Store struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

type snapshot struct {
	Bookings []*domain.BookingAggregate `json:"bookings"`
}

func New(path string, baseLog *logger.Logger) *Store {
	return &Store{path: path, log: baseLog.With("store", "file")}
}

func (s *Store) Load(ctx context.Context, userID string) (*domain.BookingAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, agg := range snap.Bookings {
		if agg.UserID == userID {
			return agg, nil
		}
	}
	return nil, nil
}

func (s *Store) Save(ctx context.Context, agg *domain.BookingAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.read()
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range snap.Bookings {
		if existing.UserID == agg.UserID {
			snap.Bookings[i] = agg
			replaced = true
			break
		}
	}
	if !replaced {
		snap.Bookings = append(snap.Bookings, agg)
	}
	return s.write(snap)
}

func (s *Store) Delete(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.read()
	if err != nil {
		return false, err
	}
	kept := snap.Bookings[:0]
	deleted := false
	for _, agg := range snap.Bookings {
		if agg.UserID == userID {
			deleted = true
			continue
		}
		kept = append(kept, agg)
	}
	if !deleted {
		return false, nil
	}
	snap.Bookings = kept
	return true, s.write(snap)
}

func (s *Store) LoadAll(ctx context.Context) ([]*domain.BookingAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.Bookings, nil
}

func (s *Store) read() (*snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookings file: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse bookings file %s: %w", s.path, err)
	}
	return &snap, nil
}

// write lands the snapshot in a temp file first and renames it into place so
// a crash mid-write never leaves a torn file behind.
func (s *Store) write(snap *snapshot) error {
	if snap.Bookings == nil {
		snap.Bookings = []*domain.BookingAggregate{}
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings file: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bookings-*.json")
	if err != nil {
		return fmt.Errorf("create temp bookings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp bookings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp bookings file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace bookings file: %w", err)
	}
	return nil
}
