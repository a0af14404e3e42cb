package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// The health endpoint is unauthenticated; everything else requires bearer
// auth when a token is configured. Rate limiting is applied globally:
// 60 requests per minute per IP.
func NewRouter(handlers *Handlers, token string, cachePinger Pinger, features Features, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(cachePinger, features, log))

	r.Group(func(r chi.Router) {
		if token != "" {
			r.Use(BearerAuth(token))
		}

		r.Get("/api/v1/destinations", handlers.SearchDestinations)
		r.Get("/api/v1/destinations/{city}/weather", handlers.DestinationWeather)
		r.Get("/api/v1/flight-offers", handlers.FlightOffers)
		r.Get("/api/v1/hotel-offers", handlers.HotelOffers)

		r.Post("/api/v1/itineraries", handlers.CreateItinerary)
		r.Get("/api/v1/itineraries", handlers.ListItineraries)
		r.Get("/api/v1/itineraries/{id}", handlers.GetItinerary)
		r.Delete("/api/v1/itineraries/{id}", handlers.DeleteItinerary)
		r.Post("/api/v1/itineraries/{id}/items", handlers.AddItem)
		r.Delete("/api/v1/itineraries/{id}/items/{itemID}", handlers.RemoveItem)

		r.Post("/api/v1/pending", handlers.SetPending)
		r.Get("/api/v1/pending", handlers.GetPending)
		r.Post("/api/v1/pending/assign", handlers.AssignPending)
		r.Delete("/api/v1/pending", handlers.CancelPending)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
