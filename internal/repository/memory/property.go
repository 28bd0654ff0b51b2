package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/lightbnb/lightbnb/internal/domain"
)

// PropertyRepository is a process-local implementation of
// repository.PropertyRepository. Its contents are lost on restart. Search
// follows the PostgreSQL semantics: only reviewed properties are returned,
// and the rating filter applies to individual reviews before averaging.
// Reviews only arrive through AddReview, which the HTTP API never calls, so
// listings created through the API stay out of search results. The store is
// meant for demos and tests.
type PropertyRepository struct {
	mu         sync.RWMutex
	properties map[int64]domain.Property
	reviews    map[int64][]int
	nextID     int64
}

// NewPropertyRepository creates an empty store. Ids start at 1.
func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{
		properties: make(map[int64]domain.Property),
		reviews:    make(map[int64][]int),
		nextID:     1,
	}
}

// AddProperty stores a copy of p under the next sequential id.
func (r *PropertyRepository) AddProperty(_ context.Context, p *domain.Property) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	stored.ID = r.nextID
	stored.AverageRating = nil
	r.nextID++
	r.properties[stored.ID] = stored

	return &stored, nil
}

// AddReview records a rating for a property.
func (r *PropertyRepository) AddReview(propertyID int64, rating int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[propertyID] = append(r.reviews[propertyID], rating)
}

// GetAllProperties returns up to limit properties matching every present
// criterion, cheapest first.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, c domain.SearchCriteria, limit int) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Property, 0)
	for id, p := range r.properties {
		if !matchesProperty(p, c) {
			continue
		}
		var sum, n int
		for _, rating := range r.reviews[id] {
			if c.MinimumRating != nil && float64(rating) < *c.MinimumRating {
				continue
			}
			sum += rating
			n++
		}
		if n == 0 {
			continue
		}
		avg := float64(sum) / float64(n)
		p.AverageRating = &avg
		result = append(result, p)
	}

	slices.SortFunc(result, func(a, b domain.Property) int {
		return cmp.Or(cmp.Compare(a.CostPerNight, b.CostPerNight), cmp.Compare(a.ID, b.ID))
	})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func matchesProperty(p domain.Property, c domain.SearchCriteria) bool {
	if c.City != nil && !strings.Contains(strings.ToLower(p.City), strings.ToLower(*c.City)) {
		return false
	}
	if c.MinimumPricePerNight != nil && p.CostPerNight < *c.MinimumPricePerNight {
		return false
	}
	if c.MaximumPricePerNight != nil && p.CostPerNight > *c.MaximumPricePerNight {
		return false
	}
	return true
}
