package domain

// BookingAggregate is the complete booking record for one user: every date
// they hold reservations on, and the movies reserved per date. It exists in
// storage only while Dates is non-empty.
type BookingAggregate struct {
	UserID string      `json:"userid"`
	Dates  []DateEntry `json:"dates"`
}

// DateEntry groups the movies a user reserved on one date. Dates are opaque
// tokens compared for equality, never parsed. An entry with no movies is not
// a valid persisted state.
type DateEntry struct {
	Date   string   `json:"date"`
	Movies []string `json:"movies"`
}

// FindDate returns the index of the entry for date, or -1.
func (a *BookingAggregate) FindDate(date string) int {
	for i := range a.Dates {
		if a.Dates[i].Date == date {
			return i
		}
	}
	return -1
}

// HasMovie reports whether movieID is already reserved in this entry.
func (e *DateEntry) HasMovie(movieID string) bool {
	for _, m := range e.Movies {
		if m == movieID {
			return true
		}
	}
	return false
}
