package http

import (
	"log/slog"
	"net/http"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/service"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
	"github.com/lightbnb/lightbnb/pkg/httputil"
	"github.com/lightbnb/lightbnb/pkg/middleware"
	"github.com/lightbnb/lightbnb/pkg/validator"
)

// PropertyHandler serves the /api/properties endpoints.
type PropertyHandler struct {
	service      *service.PropertyService
	defaultLimit int
	logger       *slog.Logger
}

// NewPropertyHandler creates a new property HTTP handler. defaultLimit
// applies when the request has no limit parameter.
func NewPropertyHandler(svc *service.PropertyService, defaultLimit int, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{service: svc, defaultLimit: defaultLimit, logger: logger}
}

// CreatePropertyRequest is the JSON body of POST /api/properties.
type CreatePropertyRequest struct {
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string `json:"country" validate:"required"`
	Street            string `json:"street" validate:"required"`
	City              string `json:"city" validate:"required"`
	Province          string `json:"province" validate:"required"`
	PostCode          string `json:"post_code" validate:"required"`
}

// PropertiesResponse is the body of GET /api/properties.
type PropertiesResponse struct {
	Properties []domain.Property `json:"properties"`
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := searchCriteriaFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	limit, err := limitFromQuery(r, h.defaultLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	properties, err := h.service.Search(r.Context(), criteria, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: PropertiesResponse{Properties: properties}})
}

// Create handles POST /api/properties. The caller becomes the owner.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("not logged in"), h.logger)
		return
	}

	var req CreatePropertyRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), ownerID, &domain.Property{
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Country:           req.Country,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: created})
}

// searchCriteriaFromQuery reads the optional filters. Empty parameters are
// treated as absent.
func searchCriteriaFromQuery(r *http.Request) (domain.SearchCriteria, error) {
	var c domain.SearchCriteria
	var err error

	if city := r.URL.Query().Get("city"); city != "" {
		c.City = &city
	}
	if c.MinimumPricePerNight, err = httputil.OptionalInt64(r, "minimum_price_per_night"); err != nil {
		return c, err
	}
	if c.MaximumPricePerNight, err = httputil.OptionalInt64(r, "maximum_price_per_night"); err != nil {
		return c, err
	}
	if c.MinimumRating, err = httputil.OptionalFloat64(r, "minimum_rating"); err != nil {
		return c, err
	}
	return c, nil
}

// limitFromQuery returns the limit query parameter, or fallback when it is
// absent. A present limit must be positive.
func limitFromQuery(r *http.Request, fallback int) (int, error) {
	raw, err := httputil.OptionalInt64(r, "limit")
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return fallback, nil
	}
	if *raw < 1 {
		return 0, apperrors.InvalidInput("limit must be a positive integer")
	}
	return int(*raw), nil
}
