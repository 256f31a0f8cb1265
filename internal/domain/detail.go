package domain

// DetailedBookings is the denormalized view of one user's bookings, joined
// with movie and schedule data fetched from the collaborators. Pairs whose
// movie or schedule lookup failed are dropped; dates with no surviving pairs
// are omitted.
type DetailedBookings struct {
	UserID   string         `json:"userid"`
	Bookings []DetailedDate `json:"bookings"`
}

type DetailedDate struct {
	Date   string          `json:"date"`
	Movies []DetailedMovie `json:"movies"`
}

type DetailedMovie struct {
	Movie    MovieSummary `json:"movie"`
	Schedule DaySchedule  `json:"schedule"`
}
