package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrCredentialsMissing is returned by TokenSource.Token when no
// client-credentials pair is configured. No network call is made.
var ErrCredentialsMissing = errors.New("amadeus credentials not configured")

// ErrAuthFailure is returned when the token exchange itself is rejected.
var ErrAuthFailure = errors.New("amadeus authentication failed")

// Tokens are treated as expired this long before the server-reported expiry
// so a token never runs out mid-request.
const expirySafetyMargin = 300 * time.Second

const tokenPath = "/v1/security/oauth2/token"

// TokenSource exchanges client credentials for a bearer token and caches it
// until shortly before expiry. A failed refresh never clears a still-valid
// cached token; only Invalidate does that.
type TokenSource struct {
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
	now       func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewTokenSource constructs a TokenSource for the given host and credentials.
// Empty credentials are allowed; Token then fails with ErrCredentialsMissing.
func NewTokenSource(baseURL, apiKey, apiSecret string) *TokenSource {
	return &TokenSource{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		client:    newHTTPClient(),
		now:       time.Now,
	}
}

// NewTokenSourceWithClock constructs a TokenSource with an injectable clock
// (for tests exercising expiry).
func NewTokenSourceWithClock(baseURL, apiKey, apiSecret string, now func() time.Time) *TokenSource {
	ts := NewTokenSource(baseURL, apiKey, apiSecret)
	ts.now = now
	return ts
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns a valid bearer token, performing an exchange only when no
// unexpired token is cached.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if ts.apiKey == "" || ts.apiSecret == "" {
		return "", ErrCredentialsMissing
	}

	ts.mu.Lock()
	if ts.token != "" && ts.now().Before(ts.expires) {
		token := ts.token
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()

	return ts.exchange(ctx)
}

// Invalidate clears the cached token. The travel client calls this exactly
// once per request when the provider rejects the token.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = ""
	ts.expires = time.Time{}
	ts.mu.Unlock()
}

// exchange performs the client-credentials grant and caches the result.
func (ts *TokenSource) exchange(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", ts.apiKey)
	form.Set("client_secret", ts.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		ts.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned status %d", ErrAuthFailure, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %w", ErrAuthFailure, err)
	}

	expires := ts.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expirySafetyMargin)

	ts.mu.Lock()
	ts.token = tr.AccessToken
	ts.expires = expires
	ts.mu.Unlock()

	return tr.AccessToken, nil
}
