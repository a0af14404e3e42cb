// Package config loads application configuration from environment variables.
//
// Provider credentials are optional: a missing Amadeus key/secret pair or
// OpenWeatherMap key degrades the corresponding feature instead of failing
// startup, mirroring how the product behaves without configured API keys.
package config

import "os"

// Default Amadeus host is the free test environment; production requires an
// explicit AMADEUS_BASE_URL.
const defaultAmadeusURL = "https://test.api.amadeus.com"

const defaultWeatherURL = "https://api.openweathermap.org/data/2.5"

// Config holds all configuration values for the server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// AmadeusAPIKey and AmadeusAPISecret are the travel provider's
	// client-credentials pair. Both empty is a valid degraded state.
	AmadeusAPIKey    string
	AmadeusAPISecret string

	// AmadeusBaseURL is the travel provider host. Defaults to the test host.
	AmadeusBaseURL string

	// WeatherAPIKey is the OpenWeatherMap key. Empty disables weather.
	WeatherAPIKey string

	// WeatherBaseURL is the weather provider host.
	WeatherBaseURL string

	// RedisURL enables the search-result cache when set.
	RedisURL string

	// APIToken, when set, requires Authorization: Bearer on all routes
	// except health.
	APIToken string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		AmadeusAPIKey:    os.Getenv("AMADEUS_API_KEY"),
		AmadeusAPISecret: os.Getenv("AMADEUS_API_SECRET"),
		AmadeusBaseURL:   getEnv("AMADEUS_BASE_URL", defaultAmadeusURL),
		WeatherAPIKey:    os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL:   getEnv("OPENWEATHER_BASE_URL", defaultWeatherURL),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIToken:         os.Getenv("API_TOKEN"),
	}
}

// TravelEnabled reports whether the Amadeus credential pair is configured.
func (c Config) TravelEnabled() bool {
	return c.AmadeusAPIKey != "" && c.AmadeusAPISecret != ""
}

// WeatherEnabled reports whether the OpenWeatherMap key is configured.
func (c Config) WeatherEnabled() bool {
	return c.WeatherAPIKey != ""
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
