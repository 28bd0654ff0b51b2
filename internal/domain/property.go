package domain

// Property is a rental listing. AverageRating is computed by reads from
// property_reviews and is nil when the property has no reviews or when the
// record was not produced by an aggregate query.
type Property struct {
	ID                int64    `json:"id"`
	OwnerID           int64    `json:"owner_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ThumbnailPhotoURL string   `json:"thumbnail_photo_url"`
	CoverPhotoURL     string   `json:"cover_photo_url"`
	CostPerNight      int64    `json:"cost_per_night"`
	ParkingSpaces     int      `json:"parking_spaces"`
	NumberOfBathrooms int      `json:"number_of_bathrooms"`
	NumberOfBedrooms  int      `json:"number_of_bedrooms"`
	Country           string   `json:"country"`
	Street            string   `json:"street"`
	City              string   `json:"city"`
	Province          string   `json:"province"`
	PostCode          string   `json:"post_code"`
	Active            bool     `json:"active"`
	AverageRating     *float64 `json:"average_rating,omitempty"`
}

// PropertyReview is a guest's rating of a stay. Reads only use it in
// aggregate form.
type PropertyReview struct {
	ID            int64  `json:"id"`
	GuestID       int64  `json:"guest_id"`
	PropertyID    int64  `json:"property_id"`
	ReservationID int64  `json:"reservation_id"`
	Rating        int    `json:"rating"`
	Message       string `json:"message"`
}
