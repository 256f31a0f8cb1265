package services

import (
	"context"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/logger"
	"github.com/cinebook/backend/internal/storage"
)

// CollaboratorGateway is what the engine needs from the outbound gateway.
// All three calls are total: failures have already been collapsed to absence.
type CollaboratorGateway interface {
	MovieExists(ctx context.Context, movieID string) *domain.MovieSummary
	ScheduleForDate(ctx context.Context, date string) *domain.DaySchedule
	IsAdmin(ctx context.Context, userID string) bool
}

// BookingService enforces the aggregate invariants: no duplicate movie per
// (user, date), no empty date entries, no empty aggregates in storage.
type BookingService struct {
	store storage.Store
	gw    CollaboratorGateway
	locks *userLocks
	log   *logger.Logger
}

func NewBookingService(store storage.Store, gw CollaboratorGateway, baseLog *logger.Logger) *BookingService {
	return &BookingService{
		store: store,
		gw:    gw,
		locks: newUserLocks(),
		log:   baseLog.With("service", "BookingService"),
	}
}

// BookingConfirmation echoes a successful creation back to the caller.
type BookingConfirmation struct {
	UserID  string `json:"userid"`
	MovieID string `json:"movieid"`
	Date    string `json:"date"`
}

// Create validates the booking against the catalog and the schedule before
// touching storage, so a failed validation never leaves a partial write.
func (s *BookingService) Create(ctx context.Context, userID, movieID, date string) (*BookingConfirmation, error) {
	if userID == "" || movieID == "" || date == "" {
		return nil, errInvalidRequest("userid, movieid and date are required")
	}

	if s.gw.MovieExists(ctx, movieID) == nil {
		return nil, errMovieNotFound(movieID)
	}
	day := s.gw.ScheduleForDate(ctx, date)
	if day == nil || !day.HasMovie(movieID) {
		return nil, errNotScheduled(movieID, date)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	agg, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		agg = &domain.BookingAggregate{UserID: userID}
	}

	idx := agg.FindDate(date)
	if idx < 0 {
		agg.Dates = append(agg.Dates, domain.DateEntry{Date: date})
		idx = len(agg.Dates) - 1
	}
	if agg.Dates[idx].HasMovie(movieID) {
		return nil, errDuplicateBooking(movieID, date)
	}

	agg.Dates[idx].Movies = append(agg.Dates[idx].Movies, movieID)
	if err := s.store.Save(ctx, agg); err != nil {
		return nil, err
	}

	s.log.Info("booking created", "user_id", userID, "movie_id", movieID, "date", date)
	return &BookingConfirmation{UserID: userID, MovieID: movieID, Date: date}, nil
}

// Delete removes one (movie, date) reservation. Emptied date entries are
// dropped, and an aggregate whose last entry went away is deleted outright
// rather than persisted empty.
func (s *BookingService) Delete(ctx context.Context, userID, movieID, date string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	agg, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if agg == nil {
		return errBookingNotFound()
	}

	idx := agg.FindDate(date)
	if idx < 0 || !agg.Dates[idx].HasMovie(movieID) {
		return errBookingNotFound()
	}

	entry := &agg.Dates[idx]
	kept := entry.Movies[:0]
	for _, m := range entry.Movies {
		if m != movieID {
			kept = append(kept, m)
		}
	}
	entry.Movies = kept
	if len(entry.Movies) == 0 {
		agg.Dates = append(agg.Dates[:idx], agg.Dates[idx+1:]...)
	}

	if len(agg.Dates) == 0 {
		if _, err := s.store.Delete(ctx, userID); err != nil {
			return err
		}
	} else if err := s.store.Save(ctx, agg); err != nil {
		return err
	}

	s.log.Info("booking deleted", "user_id", userID, "movie_id", movieID, "date", date)
	return nil
}

// DeleteAll drops a user's whole aggregate.
func (s *BookingService) DeleteAll(ctx context.Context, userID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	deleted, err := s.store.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return errBookingNotFound()
	}
	s.log.Info("all bookings deleted", "user_id", userID)
	return nil
}

// ListAll returns every aggregate. Admin-gated: the requester's identity is
// required, and the admin check fails closed when the identity service is
// unreachable.
func (s *BookingService) ListAll(ctx context.Context, requesterID string) ([]*domain.BookingAggregate, error) {
	if requesterID == "" {
		return nil, errInvalidRequest("requester userid is required")
	}
	if !s.gw.IsAdmin(ctx, requesterID) {
		return nil, errForbidden()
	}
	return s.store.LoadAll(ctx)
}

// ByUser returns the user's aggregate, or nil when they have none. An empty
// answer is a valid result, not an error.
func (s *BookingService) ByUser(ctx context.Context, userID string) (*domain.BookingAggregate, error) {
	return s.store.Load(ctx, userID)
}
