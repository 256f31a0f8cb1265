package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cinebook/backend/internal/domain"
)

const detailLookupConcurrency = 4

// DetailedByUser joins a user's aggregate with movie and schedule data from
// the collaborators. The join is best-effort: a pair whose movie or schedule
// lookup failed is dropped silently, and a date keeps its place in the output
// only if at least one pair survived. Order of dates and movies is preserved
// as stored.
func (s *BookingService) DetailedByUser(ctx context.Context, userID string) (*domain.DetailedBookings, error) {
	agg, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, nil
	}

	// Schedule lookups are cached per date for the duration of this request,
	// absent answers included.
	schedules := make(map[string]*domain.DaySchedule)

	out := &domain.DetailedBookings{UserID: userID, Bookings: []domain.DetailedDate{}}
	for _, entry := range agg.Dates {
		day, seen := schedules[entry.Date]
		if !seen {
			day = s.gw.ScheduleForDate(ctx, entry.Date)
			schedules[entry.Date] = day
		}

		movies := s.lookupMovies(ctx, entry.Movies)

		detailed := domain.DetailedDate{Date: entry.Date}
		for i, movieID := range entry.Movies {
			if movies[i] == nil || day == nil {
				s.log.Debug("dropping booking pair from detail view",
					"user_id", userID, "movie_id", movieID, "date", entry.Date)
				continue
			}
			detailed.Movies = append(detailed.Movies, domain.DetailedMovie{
				Movie:    *movies[i],
				Schedule: *day,
			})
		}
		if len(detailed.Movies) > 0 {
			out.Bookings = append(out.Bookings, detailed)
		}
	}
	return out, nil
}

// lookupMovies fans out catalog lookups for one date entry. Results land in
// indexed slots so stored order survives the concurrency.
func (s *BookingService) lookupMovies(ctx context.Context, movieIDs []string) []*domain.MovieSummary {
	results := make([]*domain.MovieSummary, len(movieIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailLookupConcurrency)
	for i, id := range movieIDs {
		g.Go(func() error {
			results[i] = s.gw.MovieExists(gctx, id)
			return nil
		})
	}
	// Lookups report absence instead of failing, so the group never errors.
	_ = g.Wait()
	return results
}
