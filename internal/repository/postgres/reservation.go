package postgres

import (
	"context"
	"fmt"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/pkg/database"
)

// ReservationRepository implements repository.ReservationRepository using PostgreSQL.
type ReservationRepository struct {
	db database.DBTX
}

// NewReservationRepository creates a PostgreSQL-backed reservation repository.
func NewReservationRepository(db database.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// GetAllReservations returns a guest's reservations that ended before today,
// ordered by start date. Only reservations that were reviewed are returned,
// since the rating is averaged over the reservation's reviews.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID int64, limit int) ([]domain.ReservationDetail, error) {
	query := `
		SELECT reservations.id, reservations.guest_id, reservations.property_id,
			reservations.start_date, reservations.end_date,
			` + propertyColumns + `,
			avg(property_reviews.rating) AS average_rating
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		JOIN property_reviews ON property_reviews.reservation_id = reservations.id
		WHERE reservations.end_date < now()::date AND reservations.guest_id = $1
		GROUP BY reservations.id, properties.id
		ORDER BY reservations.start_date
		LIMIT $2`

	ctx, end := database.TraceQuery(ctx, "reservations.list_past", query)
	reservations, err := r.queryReservations(ctx, query, guestID, limit)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.ReservationDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.ReservationDetail, 0)
	for rows.Next() {
		var d domain.ReservationDetail
		dest := []any{&d.ID, &d.GuestID, &d.PropertyID, &d.StartDate, &d.EndDate}
		dest = append(dest, propertyDest(&d.Property)...)
		dest = append(dest, &d.Property.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, d)
	}
	return reservations, rows.Err()
}
