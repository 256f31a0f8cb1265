package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/logger"
)

// bookingRow is one stored document: the whole per-user aggregate in a single
// row, dates held as one JSON value. The row ID is internal bookkeeping and
// never part of the logical model.
type bookingRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex"`
	Dates     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bookingRow) TableName() string { return "bookings" }

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("store", "document")}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&bookingRow{})
}

func (s *Store) Load(ctx context.Context, userID string) (*domain.BookingAggregate, error) {
	var row bookingRow
	err := s.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToAggregate(&row)
}

// Save replaces the stored dates document wholesale. The engine reads, mutates
// and writes back the full aggregate, so a field-level merge would be wrong.
func (s *Store) Save(ctx context.Context, agg *domain.BookingAggregate) error {
	dates, err := json.Marshal(agg.Dates)
	if err != nil {
		return fmt.Errorf("encode dates for %q: %w", agg.UserID, err)
	}
	now := time.Now().UTC()
	row := bookingRow{
		ID:        uuid.NewString(),
		UserID:    agg.UserID,
		Dates:     datatypes.JSON(dates),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"dates", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *Store) Delete(ctx context.Context, userID string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&bookingRow{}, "user_id = ?", userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) LoadAll(ctx context.Context) ([]*domain.BookingAggregate, error) {
	var rows []bookingRow
	if err := s.db.WithContext(ctx).
		Order("created_at ASC, user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.BookingAggregate, 0, len(rows))
	for i := range rows {
		agg, err := rowToAggregate(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

func rowToAggregate(row *bookingRow) (*domain.BookingAggregate, error) {
	agg := &domain.BookingAggregate{UserID: row.UserID}
	if len(row.Dates) > 0 {
		if err := json.Unmarshal(row.Dates, &agg.Dates); err != nil {
			return nil, fmt.Errorf("decode dates for %q: %w", row.UserID, err)
		}
	}
	return agg, nil
}
