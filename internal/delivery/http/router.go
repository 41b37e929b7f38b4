package http

import (
	"net/http"

	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events   *controllers.EventController
	Bookings *controllers.BookingController
	Auth     *controllers.AuthController
	Health   *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards the organizer routes; limiter throttles public booking creation.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc, limiter *middleware.IPRateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	// Public catalog
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{slug}", c.Events.GetEvent)
	mux.HandleFunc("GET /events/{slug}/similar", c.Events.SimilarEvents)

	// Organizer
	mux.HandleFunc("POST /events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("PATCH /events/{slug}", requireAuth(c.Events.UpdateEvent))
	mux.HandleFunc("GET /events/{slug}/bookings", requireAuth(c.Bookings.ListEventBookings))

	// Bookings
	mux.HandleFunc("POST /bookings", limiter.Limit(c.Bookings.CreateBooking))

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
