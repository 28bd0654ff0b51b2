// Package seed fills a LightBnB database with generated demo data.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lightbnb/lightbnb/pkg/database"
)

const defaultBatchSize = 500

// Seeder writes a Dataset. Seeding replaces all existing rows.
type Seeder struct {
	db        database.DBTX
	logger    *slog.Logger
	batchSize int
}

// NewSeeder creates a seeder that inserts rows in batches.
func NewSeeder(db database.DBTX, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, logger: logger, batchSize: defaultBatchSize}
}

type table struct {
	name    string
	columns []string
	rows    [][]any
}

// Seed truncates every table, inserts d and moves each id sequence past the
// inserted ids.
func (s *Seeder) Seed(ctx context.Context, d *Dataset) error {
	if _, err := s.db.Exec(ctx, "TRUNCATE property_reviews, reservations, properties, users RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	for _, t := range d.tables() {
		if err := s.insert(ctx, t); err != nil {
			return err
		}
		if len(t.rows) == 0 {
			continue
		}
		_, err := s.db.Exec(ctx,
			fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT max(id) FROM %s))", t.name, t.name))
		if err != nil {
			return fmt.Errorf("reset %s id sequence: %w", t.name, err)
		}
		s.logger.InfoContext(ctx, "table seeded", slog.String("table", t.name), slog.Int("rows", len(t.rows)))
	}
	return nil
}

func (s *Seeder) insert(ctx context.Context, t table) error {
	for start := 0; start < len(t.rows); start += s.batchSize {
		end := min(start+s.batchSize, len(t.rows))
		query, args := buildInsert(t.name, t.columns, t.rows[start:end])
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", t.name, start, end, err)
		}
	}
	return nil
}

// buildInsert renders one multi-row INSERT with sequential placeholders.
func buildInsert(tableName string, columns []string, rows [][]any) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(rows)*len(columns))

	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", tableName, strings.Join(columns, ", "))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&sb, "$%d", len(args))
		}
		sb.WriteByte(')')
	}
	return sb.String(), args
}

// tables lists d in foreign-key order.
func (d *Dataset) tables() []table {
	users := table{name: "users", columns: []string{"id", "name", "email", "password"}}
	for _, u := range d.Users {
		users.rows = append(users.rows, []any{u.ID, u.Name, u.Email, u.Password})
	}

	properties := table{name: "properties", columns: []string{
		"id", "owner_id", "title", "description", "thumbnail_photo_url", "cover_photo_url",
		"cost_per_night", "parking_spaces", "number_of_bathrooms", "number_of_bedrooms",
		"country", "street", "city", "province", "post_code", "active",
	}}
	for _, p := range d.Properties {
		properties.rows = append(properties.rows, []any{
			p.ID, p.OwnerID, p.Title, p.Description, p.ThumbnailPhotoURL, p.CoverPhotoURL,
			p.CostPerNight, p.ParkingSpaces, p.NumberOfBathrooms, p.NumberOfBedrooms,
			p.Country, p.Street, p.City, p.Province, p.PostCode, p.Active,
		})
	}

	reservations := table{name: "reservations", columns: []string{"id", "guest_id", "property_id", "start_date", "end_date"}}
	for _, r := range d.Reservations {
		reservations.rows = append(reservations.rows, []any{r.ID, r.GuestID, r.PropertyID, r.StartDate, r.EndDate})
	}

	reviews := table{name: "property_reviews", columns: []string{"id", "guest_id", "property_id", "reservation_id", "rating", "message"}}
	for _, r := range d.Reviews {
		reviews.rows = append(reviews.rows, []any{r.ID, r.GuestID, r.PropertyID, r.ReservationID, r.Rating, r.Message})
	}

	return []table{users, properties, reservations, reviews}
}
