package services

import (
	"context"
	"testing"

	"github.com/cinebook/backend/internal/domain"
)

func seedAggregate(t *testing.T, svc *BookingService, agg *domain.BookingAggregate) {
	t.Helper()
	if err := svc.store.Save(context.Background(), agg); err != nil {
		t.Fatalf("seed aggregate: %v", err)
	}
}

func TestDetailedByUserJoins(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.addMovie("m1", "A New Hope")
	gw.addMovie("m2", "The Empire Strikes Back")
	gw.addSchedule("20250101", "m1", "m2")
	gw.addSchedule("20250102", "m2")
	ctx := context.Background()

	seedAggregate(t, svc, &domain.BookingAggregate{
		UserID: "u1",
		Dates: []domain.DateEntry{
			{Date: "20250101", Movies: []string{"m1", "m2"}},
			{Date: "20250102", Movies: []string{"m2"}},
		},
	})

	detailed, err := svc.DetailedByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("DetailedByUser: %v", err)
	}
	if detailed.UserID != "u1" || len(detailed.Bookings) != 2 {
		t.Fatalf("unexpected result %+v", detailed)
	}

	first := detailed.Bookings[0]
	if first.Date != "20250101" || len(first.Movies) != 2 {
		t.Fatalf("unexpected first date %+v", first)
	}
	if first.Movies[0].Movie.Title != "A New Hope" || first.Movies[1].Movie.Title != "The Empire Strikes Back" {
		t.Fatalf("movie order not preserved: %+v", first.Movies)
	}
	if first.Movies[0].Schedule.Date != "20250101" || !first.Movies[0].Schedule.HasMovie("m2") {
		t.Fatalf("unexpected joined schedule: %+v", first.Movies[0].Schedule)
	}

	second := detailed.Bookings[1]
	if second.Date != "20250102" || len(second.Movies) != 1 {
		t.Fatalf("unexpected second date %+v", second)
	}
}

func TestDetailedByUserCachesSchedulePerDate(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.addMovie("m1", "A New Hope")
	gw.addMovie("m2", "The Empire Strikes Back")
	gw.addMovie("m3", "Return of the Jedi")
	gw.addSchedule("20250101", "m1", "m2", "m3")

	seedAggregate(t, svc, &domain.BookingAggregate{
		UserID: "u1",
		Dates: []domain.DateEntry{
			{Date: "20250101", Movies: []string{"m1", "m2", "m3"}},
		},
	})

	if _, err := svc.DetailedByUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DetailedByUser: %v", err)
	}
	if got := gw.scheduleCalls["20250101"]; got != 1 {
		t.Fatalf("schedule should be fetched once per date per request, got %d calls", got)
	}
}

func TestDetailedByUserDropsFailedMoviePairs(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.addMovie("m1", "A New Hope")
	// m2 is unknown to the catalog (or the catalog is down for it).
	gw.addSchedule("20250101", "m1", "m2")

	seedAggregate(t, svc, &domain.BookingAggregate{
		UserID: "u1",
		Dates: []domain.DateEntry{
			{Date: "20250101", Movies: []string{"m1", "m2"}},
		},
	})

	detailed, err := svc.DetailedByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DetailedByUser: %v", err)
	}
	if len(detailed.Bookings) != 1 || len(detailed.Bookings[0].Movies) != 1 {
		t.Fatalf("expected one surviving pair, got %+v", detailed.Bookings)
	}
	if detailed.Bookings[0].Movies[0].Movie.ID != "m1" {
		t.Fatalf("wrong pair survived: %+v", detailed.Bookings[0].Movies)
	}
}

func TestDetailedByUserOmitsDatesWithNoSurvivors(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.addMovie("m1", "A New Hope")
	gw.addSchedule("20250102", "m1")
	// 20250101 has no schedule: every pair on it is dropped.

	seedAggregate(t, svc, &domain.BookingAggregate{
		UserID: "u1",
		Dates: []domain.DateEntry{
			{Date: "20250101", Movies: []string{"m1"}},
			{Date: "20250102", Movies: []string{"m1"}},
		},
	})

	detailed, err := svc.DetailedByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DetailedByUser: %v", err)
	}
	if len(detailed.Bookings) != 1 || detailed.Bookings[0].Date != "20250102" {
		t.Fatalf("date with no surviving pairs should be omitted, got %+v", detailed.Bookings)
	}
}

func TestDetailedByUserAbsentAggregate(t *testing.T) {
	svc, _, _ := newTestService(t)

	detailed, err := svc.DetailedByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("DetailedByUser: %v", err)
	}
	if detailed != nil {
		t.Fatalf("expected nil for user without bookings, got %+v", detailed)
	}
}
