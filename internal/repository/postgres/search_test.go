package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightbnb/lightbnb/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestBuildSearchQuery_NoCriteria(t *testing.T) {
	for _, mode := range []domain.WhereMode{domain.WhereModeCorrected, domain.WhereModeLegacy} {
		query, args := buildSearchQuery(domain.SearchCriteria{}, 10, mode)

		assert.NotContains(t, query, "WHERE", mode.String())
		assert.NotContains(t, query, "AND", mode.String())
		assert.Equal(t, []any{10}, args, mode.String())
		assert.True(t, strings.HasSuffix(query, "LIMIT $1"), mode.String())
	}
}

func TestBuildSearchQuery_SingleCriterion(t *testing.T) {
	tests := []struct {
		name      string
		criteria  domain.SearchCriteria
		predicate string
		value     any
	}{
		{"city", domain.SearchCriteria{City: ptr("van")}, "WHERE city ILIKE $1", "%van%"},
		{"minimum price", domain.SearchCriteria{MinimumPricePerNight: ptr(int64(100))}, "WHERE properties.cost_per_night >= $1", int64(100)},
		{"maximum price", domain.SearchCriteria{MaximumPricePerNight: ptr(int64(200))}, "WHERE properties.cost_per_night <= $1", int64(200)},
		{"minimum rating", domain.SearchCriteria{MinimumRating: ptr(4.0)}, "WHERE property_reviews.rating >= $1::numeric", 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildSearchQuery(tt.criteria, 7, domain.WhereModeCorrected)

			assert.Contains(t, query, tt.predicate)
			assert.Equal(t, 1, strings.Count(query, "WHERE"))
			assert.Equal(t, []any{tt.value, 7}, args)
			assert.True(t, strings.HasSuffix(query, "LIMIT $2"))
		})
	}
}

func TestBuildSearchQuery_PriceRange(t *testing.T) {
	criteria := domain.SearchCriteria{
		MinimumPricePerNight: ptr(int64(100)),
		MaximumPricePerNight: ptr(int64(200)),
	}

	query, args := buildSearchQuery(criteria, 5, domain.WhereModeCorrected)

	assert.Equal(t, []any{int64(100), int64(200), 5}, args)
	assert.Contains(t, query, "WHERE properties.cost_per_night >= $1\n")
	assert.Contains(t, query, "AND properties.cost_per_night <= $2\n")
	assert.True(t, strings.HasSuffix(query, "LIMIT $3"))
}

func TestBuildSearchQuery_AllCriteriaInFixedOrder(t *testing.T) {
	criteria := domain.SearchCriteria{
		MinimumRating:        ptr(3.5),
		MaximumPricePerNight: ptr(int64(500)),
		MinimumPricePerNight: ptr(int64(50)),
		City:                 ptr("Vancouver"),
	}

	query, args := buildSearchQuery(criteria, 10, domain.WhereModeCorrected)

	assert.Equal(t, []any{"%Vancouver%", int64(50), int64(500), 3.5, 10}, args)

	wantOrder := []string{
		"WHERE city ILIKE $1",
		"AND properties.cost_per_night >= $2",
		"AND properties.cost_per_night <= $3",
		"AND property_reviews.rating >= $4::numeric",
		"GROUP BY properties.id",
		"ORDER BY cost_per_night",
		"LIMIT $5",
	}
	last := -1
	for _, fragment := range wantOrder {
		idx := strings.Index(query, fragment)
		assert.Greater(t, idx, last, fragment)
		last = idx
	}
}

func TestBuildSearchQuery_LegacyMode(t *testing.T) {
	t.Run("no city emits AND without WHERE", func(t *testing.T) {
		query, args := buildSearchQuery(domain.SearchCriteria{MinimumPricePerNight: ptr(int64(100))}, 10, domain.WhereModeLegacy)

		assert.Contains(t, query, "AND properties.cost_per_night >= $1")
		assert.NotContains(t, query, "WHERE")
		assert.Equal(t, []any{int64(100), 10}, args)
	})

	t.Run("city first matches corrected mode", func(t *testing.T) {
		criteria := domain.SearchCriteria{
			City:                 ptr("van"),
			MinimumPricePerNight: ptr(int64(100)),
			MinimumRating:        ptr(4.0),
		}

		legacy, legacyArgs := buildSearchQuery(criteria, 10, domain.WhereModeLegacy)
		corrected, correctedArgs := buildSearchQuery(criteria, 10, domain.WhereModeCorrected)

		assert.Equal(t, corrected, legacy)
		assert.Equal(t, correctedArgs, legacyArgs)
	})
}

func TestBuildSearchQuery_SelectsAverageRating(t *testing.T) {
	query, _ := buildSearchQuery(domain.SearchCriteria{}, 10, domain.WhereModeCorrected)

	assert.Contains(t, query, "avg(property_reviews.rating) AS average_rating")
	assert.Contains(t, query, "JOIN property_reviews ON property_reviews.property_id = properties.id")
	assert.Contains(t, query, "properties.cost_per_night")
}
