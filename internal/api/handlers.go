package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/travex/travex/internal/amadeus"
	"github.com/travex/travex/internal/itinerary"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	travel  TravelClient
	weather WeatherClient
	cache   SearchCache
	store   *itinerary.Store
	handoff *itinerary.Handoff
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(travel TravelClient, weather WeatherClient, cache SearchCache, store *itinerary.Store, handoff *itinerary.Handoff, log *slog.Logger) *Handlers {
	return &Handlers{
		travel:  travel,
		weather: weather,
		cache:   cache,
		store:   store,
		handoff: handoff,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SearchDestinations handles GET /api/v1/destinations?keyword=.
// Empty keywords are rejected at the boundary before any cache or provider
// call. Cache hit → return; miss → provider, then cache fill.
func (h *Handlers) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	cached, err := h.cache.Get(r.Context(), keyword)
	if err != nil {
		h.log.Error("cache get failed", "keyword", keyword, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := h.travel.SearchDestinations(r.Context(), keyword)
	if err != nil {
		h.log.Error("destination search failed", "keyword", keyword, "err", err)
		writeMappedError(w, err)
		return
	}

	if err := h.cache.Set(r.Context(), keyword, result); err != nil {
		h.log.Warn("cache set failed after search", "keyword", keyword, "err", err)
	}

	writeJSON(w, http.StatusOK, result)
}

// FlightOffers handles GET /api/v1/flight-offers.
func (h *Handlers) FlightOffers(w http.ResponseWriter, r *http.Request) {
	q := amadeus.FlightQuery{
		Origin:        r.URL.Query().Get("origin"),
		Destination:   r.URL.Query().Get("destination"),
		DepartureDate: r.URL.Query().Get("date"),
	}
	if adults := r.URL.Query().Get("adults"); adults != "" {
		n, err := strconv.Atoi(adults)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "adults must be a positive integer")
			return
		}
		q.Adults = n
	}

	result, err := h.travel.FlightOffers(r.Context(), q)
	if err != nil {
		h.log.Error("flight offers failed", "origin", q.Origin, "destination", q.Destination, "err", err)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HotelOffers handles GET /api/v1/hotel-offers?cityCode=.
func (h *Handlers) HotelOffers(w http.ResponseWriter, r *http.Request) {
	cityCode := r.URL.Query().Get("cityCode")

	result, err := h.travel.HotelOffers(r.Context(), cityCode)
	if err != nil {
		h.log.Error("hotel offers failed", "cityCode", cityCode, "err", err)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DestinationWeather handles GET /api/v1/destinations/{city}/weather.
// Weather is best-effort: the response is always 200, with absent parts
// omitted, so a weather outage never breaks the details flow.
func (h *Handlers) DestinationWeather(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country := r.URL.Query().Get("country")

	report := h.weather.FetchReport(r.Context(), city, country)
	writeJSON(w, http.StatusOK, report)
}

// Pinger is satisfied by the Redis client; nil means the cache is disabled.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Features reports which provider integrations are configured. Missing
// credentials degrade features rather than fail startup, so health is where
// a caller learns what is available.
type Features struct {
	Travel  bool
	Weather bool
}

// HealthHandlerFunc returns a handler reporting cache connectivity and
// provider configuration.
func HealthHandlerFunc(cache Pinger, features Features, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		cacheStatus := "disabled"
		if cache != nil {
			cacheStatus = "ok"
			if err := cache.Ping(ctx); err != nil {
				log.Error("health check: cache ping failed", "err", err)
				cacheStatus = "error"
				status = http.StatusServiceUnavailable
			}
		}

		body := map[string]string{
			"status":  "ok",
			"cache":   cacheStatus,
			"travel":  featureStatus(features.Travel),
			"weather": featureStatus(features.Weather),
		}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		writeJSON(w, status, body)
	}
}

func featureStatus(configured bool) string {
	if configured {
		return "configured"
	}
	return "disabled"
}
