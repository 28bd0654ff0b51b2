package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/pkg/database"
)

var propertyFields = []string{
	"id", "owner_id", "title", "description", "thumbnail_photo_url", "cover_photo_url",
	"cost_per_night", "parking_spaces", "number_of_bathrooms", "number_of_bedrooms",
	"country", "street", "city", "province", "post_code", "active",
}

// propertyColumns is propertyFields qualified with the properties table, for
// queries that join other tables.
var propertyColumns = qualify("properties", propertyFields)

func qualify(table string, fields []string) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = table + "." + f
	}
	return strings.Join(cols, ", ")
}

// PropertyRepository implements repository.PropertyRepository using PostgreSQL.
type PropertyRepository struct {
	db     database.DBTX
	mode   domain.WhereMode
	logger *slog.Logger
}

// NewPropertyRepository creates a PostgreSQL-backed property repository.
// mode selects how search predicates are joined.
func NewPropertyRepository(db database.DBTX, mode domain.WhereMode, logger *slog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, mode: mode, logger: logger}
}

// GetAllProperties returns up to limit reviewed properties matching every
// present criterion, ordered by ascending cost per night, each with its
// average rating.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, criteria domain.SearchCriteria, limit int) ([]domain.Property, error) {
	query, args := buildSearchQuery(criteria, limit, r.mode)
	r.logger.DebugContext(ctx, "property search",
		slog.String("statement", query),
		slog.Int("args", len(args)),
		slog.Bool("filtered", !criteria.IsEmpty()),
		slog.String("where_mode", r.mode.String()),
	)

	ctx, end := database.TraceQuery(ctx, "properties.search", query)
	properties, err := r.querySearch(ctx, query, args)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) querySearch(ctx context.Context, query string, args []any) ([]domain.Property, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(append(propertyDest(&p), &p.AverageRating)...); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// AddProperty inserts a property and returns the stored row.
func (r *PropertyRepository) AddProperty(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	query := `
		INSERT INTO properties (owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
			country, street, city, province, post_code, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + strings.Join(propertyFields, ", ")

	ctx, end := database.TraceQuery(ctx, "properties.add", query)
	var stored domain.Property
	err := r.db.QueryRow(ctx, query,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
		p.Country,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
		p.Active,
	).Scan(propertyDest(&stored)...)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return &stored, nil
}

// propertyDest returns scan targets in propertyFields order.
func propertyDest(p *domain.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}
