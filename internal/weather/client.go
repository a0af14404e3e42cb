// Package weather fetches current conditions and forecasts from
// OpenWeatherMap.
//
// Weather is supplementary data: every failure mode — missing API key,
// transport error, non-200 response — collapses to an absent result with a
// warn log instead of an error. This is the opposite of the travel client,
// which fails loud, and the asymmetry is deliberate: missing weather must
// never block the destination-details flow.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const httpTimeout = 10 * time.Second

// Observation holds current weather conditions for a city.
type Observation struct {
	Name string `json:"name,omitempty"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon,omitempty"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Forecast holds the provider's forecast list for a city.
type Forecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon,omitempty"`
		} `json:"weather"`
		DtTxt string `json:"dt_txt,omitempty"`
	} `json:"list"`
}

// Report bundles current conditions and a forecast; either part may be
// absent.
type Report struct {
	Current  *Observation `json:"current,omitempty"`
	Forecast *Forecast    `json:"forecast,omitempty"`
}

// Client fetches weather data. A zero API key leaves the client constructible
// but every fetch returns absent.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client with the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, client: &http.Client{Timeout: httpTimeout}}
}

// Current returns current conditions for the city, or nil if weather data is
// unavailable for any reason.
func (c *Client) Current(ctx context.Context, city, countryCode string) *Observation {
	var obs Observation
	if !c.fetch(ctx, "/weather", city, countryCode, &obs) {
		return nil
	}
	return &obs
}

// GetForecast returns the forecast for the city, or nil if unavailable.
func (c *Client) GetForecast(ctx context.Context, city, countryCode string) *Forecast {
	var fc Forecast
	if !c.fetch(ctx, "/forecast", city, countryCode, &fc) {
		return nil
	}
	return &fc
}

// FetchReport fetches current conditions and the forecast concurrently.
// Partial data is fine; the report is returned with whatever arrived.
func (c *Client) FetchReport(ctx context.Context, city, countryCode string) *Report {
	g, gCtx := errgroup.WithContext(ctx)

	var report Report
	g.Go(func() error {
		report.Current = c.Current(gCtx, city, countryCode)
		return nil
	})
	g.Go(func() error {
		report.Forecast = c.GetForecast(gCtx, city, countryCode)
		return nil
	})
	_ = g.Wait()

	return &report
}

// fetch performs one GET and reports whether dst was populated.
func (c *Client) fetch(ctx context.Context, path, city, countryCode string, dst any) bool {
	if c.apiKey == "" {
		return false
	}

	q := city
	if countryCode != "" {
		q = city + "," + countryCode
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Warn("weather request build failed", "city", city, "err", err)
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("weather fetch failed", "city", city, "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("weather fetch rejected", "city", city, "status", resp.StatusCode)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		slog.Warn("weather decode failed", "city", city, "err", fmt.Errorf("decoding %s: %w", path, err))
		return false
	}
	return true
}
