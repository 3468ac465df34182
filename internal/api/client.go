// Package api is the Al Adhan prayer-times API client. All astronomical
// computation happens server-side; this package only passes the
// calculation parameters through and decodes the result.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Params are the calculation parameters forwarded to the API. A value
// of -1 means "not set, use the API default".
type Params struct {
	Method             int // calculation method identifier (0-23)
	School             int // Asr method: 0=Shafi, 1=Hanafi
	LatitudeAdjustment int // high-latitude rule identifier
	MidnightMode       int // 0=standard, 1=jafari
}

// DefaultParams returns Params with every field unset.
func DefaultParams() Params {
	return Params{Method: -1, School: -1, LatitudeAdjustment: -1, MidnightMode: -1}
}

func (p Params) query(v url.Values) {
	if p.Method >= 0 {
		v.Set("method", fmt.Sprintf("%d", p.Method))
	}
	if p.School >= 0 {
		v.Set("school", fmt.Sprintf("%d", p.School))
	}
	if p.LatitudeAdjustment >= 0 {
		v.Set("latitudeAdjustmentMethod", fmt.Sprintf("%d", p.LatitudeAdjustment))
	}
	if p.MidnightMode >= 0 {
		v.Set("midnightMode", fmt.Sprintf("%d", p.MidnightMode))
	}
}

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchByCoordinates fetches prayer times for the given date and
// coordinates.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, p Params) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	p.query(params)

	return c.doRequest(ctx, endpoint, params)
}

// FetchByCity fetches prayer times for the given date, city, and
// country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string, p Params) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	p.query(params)

	return c.doRequest(ctx, endpoint, params)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if apiResp.Code != 200 {
		return nil, fmt.Errorf("API error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}

	return &apiResp, nil
}
