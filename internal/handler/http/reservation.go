package http

import (
	"log/slog"
	"net/http"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/service"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
	"github.com/lightbnb/lightbnb/pkg/httputil"
	"github.com/lightbnb/lightbnb/pkg/middleware"
)

// ReservationHandler serves /api/reservations.
type ReservationHandler struct {
	service *service.ReservationService
	logger  *slog.Logger
}

// NewReservationHandler creates a new reservation HTTP handler.
func NewReservationHandler(svc *service.ReservationService, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{service: svc, logger: logger}
}

// ReservationsResponse is the body of GET /api/reservations.
type ReservationsResponse struct {
	Reservations []domain.ReservationDetail `json:"reservations"`
}

// List handles GET /api/reservations for the logged-in guest.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("not logged in"), h.logger)
		return
	}

	// Zero defers to the service default.
	limit, err := limitFromQuery(r, 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	reservations, err := h.service.ListPast(r.Context(), guestID, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ReservationsResponse{Reservations: reservations}})
}
