package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/lightbnb/internal/domain"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
)

func TestReservationService_ListPast(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default", 0, domain.DefaultLimit},
		{"explicit", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockReservationRepository)
			svc := NewReservationService(repo)

			repo.On("GetAllReservations", mock.Anything, int64(4), tt.wantLimit).
				Return([]domain.ReservationDetail{{Reservation: domain.Reservation{ID: 1, GuestID: 4}}}, nil)

			got, err := svc.ListPast(context.Background(), 4, tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestReservationService_ListPast_NegativeLimit(t *testing.T) {
	svc := NewReservationService(new(mockReservationRepository))

	_, err := svc.ListPast(context.Background(), 4, -5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
