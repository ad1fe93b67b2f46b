// Package forecast fetches surf forecasts from the local forecast service.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/easysurf/easysurf/internal/buildinfo"
	"github.com/easysurf/easysurf/internal/models"
)

// SwellPath is appended to the configured API URL.
const SwellPath = "swell"

// FetchError describes a failed poll: transport, HTTP status, or decoding.
type FetchError struct {
	URL        string
	StatusCode int // zero unless the server answered with a non-2xx status
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client performs GET {apiUrl}/swell requests.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a forecast client. No request timeout is set beyond the
// transport defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  buildinfo.UserAgent(),
	}
}

// NewClientWithHTTP creates a forecast client using the given HTTP client.
func NewClientWithHTTP(hc *http.Client) *Client {
	c := NewClient()
	c.httpClient = hc
	return c
}

// SwellURL builds {apiUrl}/swell?lat={lat}&lon={lon}.
func SwellURL(apiURL string, lat, lon float64) (string, error) {
	base, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	u := base.JoinPath(SwellPath)

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Fetch retrieves the forecast for the configured location. Every failure is
// returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context, s models.Settings) (*models.ForecastResponse, error) {
	requestURL, err := SwellURL(s.APIURL, s.Latitude, s.Longitude)
	if err != nil {
		return nil, &FetchError{URL: s.APIURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{URL: requestURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var forecast models.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, &FetchError{URL: requestURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &forecast, nil
}
