// Package amadeus implements the travel provider access layer: OAuth2
// client-credentials token management and the authenticated search client.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// ErrInvalidRequest is returned when required query parameters are missing.
// No network call is made.
var ErrInvalidRequest = errors.New("invalid request")

// RequestError reports a travel provider request that failed after the
// bounded auth retry. Op names the operation ("search destinations",
// "flight offers", "hotel offers").
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("amadeus %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client issues authenticated requests against the travel provider.
//
// Retry policy: a 401 invalidates the cached token and the identical call is
// retried exactly once with a fresh token. Any other failure, and any failure
// of the retry, surfaces as a *RequestError. Transport errors are not
// retried.
type Client struct {
	tokens  *TokenSource
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the given host, drawing bearer tokens
// from tokens.
func NewClient(baseURL string, tokens *TokenSource) *Client {
	return &Client{tokens: tokens, baseURL: baseURL, client: newHTTPClient()}
}

// SearchDestinations searches cities by keyword. An empty or whitespace-only
// keyword returns an empty result without a network call.
func (c *Client) SearchDestinations(ctx context.Context, keyword string) (*DestinationResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return &DestinationResult{Data: []Destination{}}, nil
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "CITY")

	var result DestinationResult
	if err := c.get(ctx, "search destinations", "/v1/reference-data/locations", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FlightOffers searches flight offers for the given query. Origin,
// destination and departure date are required; adults defaults to 1.
func (c *Client) FlightOffers(ctx context.Context, q FlightQuery) (*FlightOfferResult, error) {
	if q.Origin == "" || q.Destination == "" || q.DepartureDate == "" {
		return nil, fmt.Errorf("%w: origin, destination and departure date are required", ErrInvalidRequest)
	}
	if q.Adults <= 0 {
		q.Adults = 1
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", "USD")
	params.Set("max", "10")

	var result FlightOfferResult
	if err := c.get(ctx, "flight offers", "/v2/shopping/flight-offers", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HotelOffers searches hotel offers for the given city code.
func (c *Client) HotelOffers(ctx context.Context, cityCode string) (*HotelOfferResult, error) {
	if strings.TrimSpace(cityCode) == "" {
		return nil, fmt.Errorf("%w: city code is required", ErrInvalidRequest)
	}

	params := url.Values{}
	params.Set("cityCode", cityCode)

	var result HotelOfferResult
	if err := c.get(ctx, "hotel offers", "/v2/shopping/hotel-offers", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs an authenticated GET with the single-retry-on-401 policy.
// Token manager errors propagate unchanged; everything else is wrapped in a
// *RequestError naming the operation.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, dst any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	status, err := c.doGet(ctx, token, path, params, dst)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusUnauthorized {
		return &RequestError{Op: op, Err: fmt.Errorf("provider returned status %d", status)}
	}

	// Token rejected: invalidate, re-obtain, retry the identical call once.
	c.tokens.Invalidate()
	token, err = c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	status, err = c.doGet(ctx, token, path, params, dst)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if status != http.StatusOK {
		return &RequestError{Op: op, Err: fmt.Errorf("provider returned status %d after token refresh", status)}
	}
	return nil
}

// doGet issues one GET attempt. A non-2xx status is reported via the return
// value, not an error, so the caller can apply the retry policy.
func (c *Client) doGet(ctx context.Context, token, path string, params url.Values, dst any) (int, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return resp.StatusCode, nil
}
