package api

import (
	"context"

	"github.com/travex/travex/internal/amadeus"
	"github.com/travex/travex/internal/weather"
)

// TravelClient defines the travel provider operations needed by handlers.
type TravelClient interface {
	SearchDestinations(ctx context.Context, keyword string) (*amadeus.DestinationResult, error)
	FlightOffers(ctx context.Context, q amadeus.FlightQuery) (*amadeus.FlightOfferResult, error)
	HotelOffers(ctx context.Context, cityCode string) (*amadeus.HotelOfferResult, error)
}

// WeatherClient defines the fail-soft weather lookup needed by handlers.
type WeatherClient interface {
	FetchReport(ctx context.Context, city, countryCode string) *weather.Report
}

// SearchCache defines the cache operations needed by the search handler.
// cache.SearchCache and cache.Noop both satisfy it.
type SearchCache interface {
	Get(ctx context.Context, keyword string) (*amadeus.DestinationResult, error)
	Set(ctx context.Context, keyword string, result *amadeus.DestinationResult) error
	Delete(ctx context.Context, keyword string) error
}
