package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/event"
	"github.com/lightbnb/lightbnb/internal/repository"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
)

// PropertyService implements property search and listing.
type PropertyService struct {
	properties repository.PropertyRepository
	events     event.Publisher
	logger     *slog.Logger
}

// NewPropertyService creates a new property service.
func NewPropertyService(properties repository.PropertyRepository, events event.Publisher, logger *slog.Logger) *PropertyService {
	return &PropertyService{properties: properties, events: events, logger: logger}
}

// Search returns up to limit properties matching criteria. A zero limit
// means domain.DefaultLimit; an empty city is treated as absent.
func (s *PropertyService) Search(ctx context.Context, criteria domain.SearchCriteria, limit int) ([]domain.Property, error) {
	limit, err := resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	if criteria.City != nil && *criteria.City == "" {
		criteria.City = nil
	}

	properties, err := s.properties.GetAllProperties(ctx, criteria, limit)
	if err != nil {
		return nil, fmt.Errorf("get all properties: %w", err)
	}
	return properties, nil
}

// Create lists a new active property owned by ownerID.
func (s *PropertyService) Create(ctx context.Context, ownerID int64, p *domain.Property) (*domain.Property, error) {
	if p.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if p.CostPerNight < 0 {
		return nil, apperrors.InvalidInput("cost_per_night must not be negative")
	}

	listing := *p
	listing.OwnerID = ownerID
	listing.Active = true

	created, err := s.properties.AddProperty(ctx, &listing)
	if err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}

	if err := s.events.PublishPropertyCreated(ctx, created); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.created event",
			slog.Int64("property_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property created",
		slog.Int64("property_id", created.ID),
		slog.Int64("owner_id", ownerID),
	)
	return created, nil
}
