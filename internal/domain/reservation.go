package domain

import "time"

// Reservation books a property for a guest over [StartDate, EndDate].
type Reservation struct {
	ID         int64     `json:"id"`
	GuestID    int64     `json:"guest_id"`
	PropertyID int64     `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// ReservationDetail is one row of a guest's reservation history: the
// reservation, the reserved property and that property's average rating.
type ReservationDetail struct {
	Reservation
	Property Property `json:"property"`
}
