package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lightbnb/lightbnb/internal/auth"
	"github.com/lightbnb/lightbnb/internal/service"
	"github.com/lightbnb/lightbnb/pkg/health"
	"github.com/lightbnb/lightbnb/pkg/middleware"
)

// ServiceName labels logs, metrics and spans.
const ServiceName = "lightbnb"

// RouterDeps are the collaborators of the HTTP API.
type RouterDeps struct {
	Users              *service.UserService
	Properties         *service.PropertyService
	Reservations       *service.ReservationService
	JWTManager         *auth.JWTManager
	Health             *health.Handler
	Metrics            *middleware.HTTPMetrics
	Gatherer           prometheus.Gatherer
	CORS               middleware.CORSConfig
	DefaultSearchLimit int
	Logger             *slog.Logger
}

// NewRouter creates a chi router with all LightBnB routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(deps.Metrics.Middleware)
	r.Use(middleware.CORS(deps.CORS))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	requireAuth := middleware.Auth(tokenValidator(deps.JWTManager))

	userHandler := NewUserHandler(deps.Users, deps.Logger)
	r.Route("/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.With(requireAuth).Get("/me", userHandler.Me)
	})

	propertyHandler := NewPropertyHandler(deps.Properties, deps.DefaultSearchLimit, deps.Logger)
	reservationHandler := NewReservationHandler(deps.Reservations, deps.Logger)
	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Get("/properties", propertyHandler.List)
		r.With(requireAuth).Post("/properties", propertyHandler.Create)
		r.With(requireAuth).Get("/reservations", reservationHandler.List)
	})

	return r
}

// tokenValidator bridges the JWT manager to the auth middleware.
func tokenValidator(m *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := m.Validate(token)
		if err != nil {
			return nil, err
		}
		id, err := claims.UserID()
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: id, Email: claims.Email}, nil
	}
}
