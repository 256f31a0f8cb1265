package gateway

import (
	"context"
	"time"

	"github.com/cinebook/backend/internal/clients/movie"
	"github.com/cinebook/backend/internal/clients/schedule"
	"github.com/cinebook/backend/internal/clients/user"
	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/httpx"
	"github.com/cinebook/backend/internal/pkg/logger"
)

// Gateway is the single outbound surface toward the collaborator services.
// Collaborators are untrusted for availability, so every failure mode —
// transport error, non-success status, missing payload — collapses into the
// same "absent" answer the business logic already handles. Nothing past this
// boundary sees a transport error.
type Gateway struct {
	movies    movie.Client
	schedules schedule.Client
	users     user.Client
	roles     *roleCache
	log       *logger.Logger
}

func New(movies movie.Client, schedules schedule.Client, users user.Client, roleTTL time.Duration, baseLog *logger.Logger) *Gateway {
	return &Gateway{
		movies:    movies,
		schedules: schedules,
		users:     users,
		roles:     newRoleCache(roleTTL),
		log:       baseLog.With("service", "Gateway"),
	}
}

// MovieExists returns the catalog's summary for movieID, or nil when the
// movie is unknown or the catalog is unreachable.
func (g *Gateway) MovieExists(ctx context.Context, movieID string) *domain.MovieSummary {
	summary, err := g.movies.MovieByID(ctx, movieID)
	if err != nil {
		g.log.Warn("movie lookup failed, treating as absent",
			"movie_id", movieID, "transient", httpx.IsRetryableError(err), "error", err)
		return nil
	}
	return summary
}

// ScheduleForDate returns the movies playing on date, or nil when nothing is
// scheduled, the schedule is empty, or the service is unreachable.
func (g *Gateway) ScheduleForDate(ctx context.Context, date string) *domain.DaySchedule {
	day, err := g.schedules.ByDate(ctx, date)
	if err != nil {
		g.log.Warn("schedule lookup failed, treating as absent",
			"date", date, "transient", httpx.IsRetryableError(err), "error", err)
		return nil
	}
	if day == nil || len(day.Movies) == 0 {
		return nil
	}
	return day
}

// RoleOf returns the user's role and whether the lookup produced one.
func (g *Gateway) RoleOf(ctx context.Context, userID string) (string, bool) {
	if role, ok := g.roles.get(userID); ok {
		return role, true
	}
	u, err := g.users.UserByID(ctx, userID)
	if err != nil {
		g.log.Warn("user lookup failed",
			"user_id", userID, "transient", httpx.IsRetryableError(err), "error", err)
		return "", false
	}
	if u == nil {
		return "", false
	}
	g.roles.put(userID, u.Role)
	return u.Role, true
}

// IsAdmin fails closed: if the identity lookup cannot be completed the user
// is not an admin.
func (g *Gateway) IsAdmin(ctx context.Context, userID string) bool {
	role, ok := g.RoleOf(ctx, userID)
	return ok && role == domain.RoleAdmin
}
