package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationColumns() []string {
	cols := []string{"id", "guest_id", "property_id", "start_date", "end_date"}
	cols = append(cols, propertyFields...)
	return append(cols, "average_rating")
}

func TestReservationRepository_GetAllReservations(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	p := sampleProperty()
	rating := 3.0
	start := time.Date(2018, 9, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2018, 9, 26, 0, 0, 0, 0, time.UTC)

	row := []any{int64(1), int64(7), p.ID, start, end}
	row = append(row, propertyValues(p)...)
	row = append(row, &rating)

	mock.ExpectQuery(`(?s)FROM reservations.+end_date < now\(\)::date AND reservations.guest_id = \$1.+ORDER BY reservations.start_date.+LIMIT \$2`).
		WithArgs(int64(7), 10).
		WillReturnRows(pgxmock.NewRows(reservationColumns()).AddRow(row...))

	got, err := repo.GetAllReservations(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(7), got[0].GuestID)
	assert.Equal(t, start, got[0].StartDate)
	assert.Equal(t, p.Title, got[0].Property.Title)
	require.NotNil(t, got[0].Property.AverageRating)
	assert.Equal(t, 3.0, *got[0].Property.AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_GetAllReservations_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	mock.ExpectQuery("FROM reservations").
		WithArgs(int64(7), 10).
		WillReturnRows(pgxmock.NewRows(reservationColumns()))

	got, err := repo.GetAllReservations(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReservationRepository_GetAllReservations_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	mock.ExpectQuery("FROM reservations").WillReturnError(errors.New("timeout"))

	got, err := repo.GetAllReservations(context.Background(), 7, 10)
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "list reservations")
}
