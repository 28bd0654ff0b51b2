package repository

import (
	"context"

	"github.com/lightbnb/lightbnb/internal/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// GetUserWithEmail returns the user with the given email or a not-found error.
	GetUserWithEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserWithID returns the user with the given id or a not-found error.
	GetUserWithID(ctx context.Context, id int64) (*domain.User, error)

	// AddUser inserts a user and returns the stored row with its assigned id.
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ReservationRepository defines reservation read operations.
type ReservationRepository interface {
	// GetAllReservations returns up to limit past reservations of a guest,
	// oldest first, each with its property and average rating.
	GetAllReservations(ctx context.Context, guestID int64, limit int) ([]domain.ReservationDetail, error)
}

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	// GetAllProperties returns up to limit reviewed properties matching every
	// present criterion, cheapest first.
	GetAllProperties(ctx context.Context, criteria domain.SearchCriteria, limit int) ([]domain.Property, error)

	// AddProperty stores a property and returns it with its assigned id.
	AddProperty(ctx context.Context, property *domain.Property) (*domain.Property, error)
}
