package domain

// MovieSummary is what the movie catalog collaborator returns for one movie.
type MovieSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Rating   float64 `json:"rating"`
}

// DaySchedule is the set of movies the schedule collaborator has playing on
// one date.
type DaySchedule struct {
	Date   string   `json:"date"`
	Movies []string `json:"movies"`
}

// HasMovie reports whether movieID is scheduled on this day.
func (s *DaySchedule) HasMovie(movieID string) bool {
	for _, m := range s.Movies {
		if m == movieID {
			return true
		}
	}
	return false
}

// User is the slice of the identity collaborator's record this service
// consumes. Role "admin" is the only admin predicate.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

const RoleAdmin = "admin"
