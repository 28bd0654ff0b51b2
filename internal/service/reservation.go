package service

import (
	"context"
	"fmt"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/repository"
)

// ReservationService implements reservation history reads.
type ReservationService struct {
	reservations repository.ReservationRepository
}

// NewReservationService creates a new reservation service.
func NewReservationService(reservations repository.ReservationRepository) *ReservationService {
	return &ReservationService{reservations: reservations}
}

// ListPast returns up to limit of the guest's finished reservations.
func (s *ReservationService) ListPast(ctx context.Context, guestID int64, limit int) ([]domain.ReservationDetail, error) {
	limit, err := resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.GetAllReservations(ctx, guestID, limit)
	if err != nil {
		return nil, fmt.Errorf("get all reservations: %w", err)
	}
	return reservations, nil
}
