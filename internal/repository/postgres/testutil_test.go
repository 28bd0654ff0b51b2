package postgres

import (
	"io"
	"log/slog"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/pkg/database"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleProperty() *domain.Property {
	return &domain.Property{
		ID:                1,
		OwnerID:           2,
		Title:             "Speed lamp",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.example/thumb.jpg",
		CoverPhotoURL:     "https://images.example/cover.jpg",
		CostPerNight:      93061,
		ParkingSpaces:     6,
		NumberOfBathrooms: 4,
		NumberOfBedrooms:  8,
		Country:           "Canada",
		Street:            "536 Namsub Highway",
		City:              "Sotboske",
		Province:          "Quebec",
		PostCode:          "28142",
		Active:            true,
	}
}

func propertyValues(p *domain.Property) []any {
	return []any{
		p.ID, p.OwnerID, p.Title, p.Description, p.ThumbnailPhotoURL, p.CoverPhotoURL,
		p.CostPerNight, p.ParkingSpaces, p.NumberOfBathrooms, p.NumberOfBedrooms,
		p.Country, p.Street, p.City, p.Province, p.PostCode, p.Active,
	}
}
