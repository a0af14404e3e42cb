package amadeus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travex/travex/internal/amadeus"
)

// provider simulates the travel provider: the token endpoint always issues a
// fresh token, and API endpoints respond per the reject function.
type provider struct {
	t          *testing.T
	tokenCalls int
	apiCalls   int
	// reject decides, per API attempt (1-based), whether to answer 401.
	reject func(attempt int) bool
	// respond writes the success body.
	respond func(w http.ResponseWriter, r *http.Request)

	srv *httptest.Server
}

func newProvider(t *testing.T, reject func(int) bool, respond func(http.ResponseWriter, *http.Request)) *provider {
	t.Helper()
	p := &provider{t: t, reject: reject, respond: respond}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			p.tokenCalls++
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 1799})
			return
		}

		p.apiCalls++
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if p.reject != nil && p.reject(p.apiCalls) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		p.respond(w, r)
	}))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *provider) client() *amadeus.Client {
	tokens := amadeus.NewTokenSource(p.srv.URL, "test-key", "test-secret")
	return amadeus.NewClient(p.srv.URL, tokens)
}

func destinationsBody(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": []map[string]any{
			{
				"id":       "CPAR",
				"iataCode": "PAR",
				"name":     "Paris",
				"address":  map[string]any{"countryCode": "FR", "countryName": "France"},
			},
		},
	})
}

func TestSearchDestinations_EmptyKeyword_NoNetworkCall(t *testing.T) {
	p := newProvider(t, nil, destinationsBody)
	c := p.client()

	for _, keyword := range []string{"", "   ", "\t"} {
		result, err := c.SearchDestinations(context.Background(), keyword)
		require.NoError(t, err)
		assert.Empty(t, result.Data)
	}
	assert.Equal(t, 0, p.tokenCalls)
	assert.Equal(t, 0, p.apiCalls)
}

func TestSearchDestinations_Success(t *testing.T) {
	p := newProvider(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reference-data/locations", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("keyword"))
		assert.Equal(t, "CITY", r.URL.Query().Get("subType"))
		destinationsBody(w, r)
	})

	result, err := p.client().SearchDestinations(context.Background(), " Paris ")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "PAR", result.Data[0].IataCode)
	assert.Equal(t, "France", result.Data[0].Address.CountryName)
}

func TestClient_AuthRejection_RetriesOnceWithFreshToken(t *testing.T) {
	p := newProvider(t,
		func(attempt int) bool { return attempt == 1 },
		destinationsBody,
	)

	result, err := p.client().SearchDestinations(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)

	assert.Equal(t, 2, p.apiCalls, "one rejected attempt plus exactly one retry")
	assert.Equal(t, 2, p.tokenCalls, "the retry must use a freshly obtained token")
}

func TestClient_SecondAuthRejection_FailsAfterTwoAttempts(t *testing.T) {
	p := newProvider(t,
		func(int) bool { return true },
		destinationsBody,
	)

	_, err := p.client().SearchDestinations(context.Background(), "Paris")
	require.Error(t, err)

	var reqErr *amadeus.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "search destinations", reqErr.Op)
	assert.Equal(t, 2, p.apiCalls, "no third attempt after a second rejection")
}

func TestClient_NonAuthFailure_NoRetry(t *testing.T) {
	p := newProvider(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.client().SearchDestinations(context.Background(), "Paris")
	require.Error(t, err)

	var reqErr *amadeus.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, p.apiCalls, "non-auth failures get a single transport attempt")
}

func TestFlightOffers_Validation(t *testing.T) {
	p := newProvider(t, nil, destinationsBody)
	c := p.client()

	queries := []amadeus.FlightQuery{
		{Destination: "PAR", DepartureDate: "2026-09-28"},
		{Origin: "NYC", DepartureDate: "2026-09-28"},
		{Origin: "NYC", Destination: "PAR"},
	}
	for _, q := range queries {
		_, err := c.FlightOffers(context.Background(), q)
		require.ErrorIs(t, err, amadeus.ErrInvalidRequest)
	}
	assert.Equal(t, 0, p.apiCalls, "validation failures must not reach the network")
}

func TestFlightOffers_Success(t *testing.T) {
	p := newProvider(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "NYC", q.Get("originLocationCode"))
		assert.Equal(t, "PAR", q.Get("destinationLocationCode"))
		assert.Equal(t, "2026-09-28", q.Get("departureDate"))
		assert.Equal(t, "1", q.Get("adults"), "adults defaults to 1")
		assert.Equal(t, "USD", q.Get("currencyCode"))
		assert.Equal(t, "10", q.Get("max"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"id":    "1",
					"price": map[string]any{"total": "512.30", "currency": "USD"},
					"itineraries": []map[string]any{
						{
							"duration": "PT7H30M",
							"segments": []map[string]any{
								{
									"departure":   map[string]any{"iataCode": "JFK", "at": "2026-09-28T18:00:00"},
									"arrival":     map[string]any{"iataCode": "CDG", "at": "2026-09-29T07:30:00"},
									"carrierCode": "AF",
									"number":      "23",
								},
							},
						},
					},
				},
			},
		})
	})

	result, err := p.client().FlightOffers(context.Background(), amadeus.FlightQuery{
		Origin: "NYC", Destination: "PAR", DepartureDate: "2026-09-28",
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)

	offer := result.Data[0]
	assert.Equal(t, "512.30", offer.Price.Total)
	require.Len(t, offer.Itineraries, 1)
	require.Len(t, offer.Itineraries[0].Segments, 1)
	assert.Equal(t, "JFK", offer.Itineraries[0].Segments[0].Departure.IataCode)

	// The provider's original bytes survive re-serialization untouched.
	require.NotEmpty(t, offer.Raw)
	reencoded, err := json.Marshal(offer)
	require.NoError(t, err)
	assert.JSONEq(t, string(offer.Raw), string(reencoded))
}

func TestHotelOffers_Validation(t *testing.T) {
	p := newProvider(t, nil, destinationsBody)

	_, err := p.client().HotelOffers(context.Background(), "  ")
	require.ErrorIs(t, err, amadeus.ErrInvalidRequest)
	assert.Equal(t, 0, p.apiCalls)
}

func TestHotelOffers_Success(t *testing.T) {
	p := newProvider(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/shopping/hotel-offers", r.URL.Path)
		assert.Equal(t, "PAR", r.URL.Query().Get("cityCode"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"hotel": map[string]any{"hotelId": "HLPAR123", "name": "Hotel Le Marais", "rating": "4"},
					"offers": []map[string]any{
						{"price": map[string]any{"total": "220.00", "currency": "USD"}},
					},
				},
			},
		})
	})

	result, err := p.client().HotelOffers(context.Background(), "PAR")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Hotel Le Marais", result.Data[0].Hotel.Name)
	require.Len(t, result.Data[0].Offers, 1)
	assert.Equal(t, "220.00", result.Data[0].Offers[0].Price.Total)
}

func TestClient_CredentialsMissing_Propagates(t *testing.T) {
	p := newProvider(t, nil, destinationsBody)
	tokens := amadeus.NewTokenSource(p.srv.URL, "", "")
	c := amadeus.NewClient(p.srv.URL, tokens)

	_, err := c.SearchDestinations(context.Background(), "Paris")
	require.ErrorIs(t, err, amadeus.ErrCredentialsMissing)
	assert.Equal(t, 0, p.apiCalls)
}
