package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"carbon-intensity/internal/model"
)

const (
	// APITimeLayout is the instant format the intensity API accepts in its path.
	APITimeLayout = "2006-01-02T15:04Z"
	apiDateLayout = "2006-01-02"
)

// CarbonIntensityClient fetches half-hour intensity records from the
// carbonintensity.org.uk API.
type CarbonIntensityClient struct {
	BaseURL string
	Client  *http.Client
}

// NewCarbonIntensityClient creates a new API client.
// If baseURL is empty, defaults to "https://api.carbonintensity.org.uk/intensity".
func NewCarbonIntensityClient(baseURL string, timeout time.Duration) *CarbonIntensityClient {
	if baseURL == "" {
		baseURL = "https://api.carbonintensity.org.uk/intensity"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CarbonIntensityClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CarbonIntensityError represents a non-success response from the API.
type CarbonIntensityError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *CarbonIntensityError) Error() string {
	return e.Message
}

// FormatAPITime renders an instant as YYYY-MM-DDTHH:MMZ in UTC.
func FormatAPITime(t time.Time) string {
	return t.UTC().Format(APITimeLayout)
}

// FormatAPIDate renders a bare YYYY-MM-DD calendar date as midnight UTC.
func FormatAPIDate(date string) (string, error) {
	d, err := time.Parse(apiDateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return d.Format(apiDateLayout) + "T00:00Z", nil
}

// WindowURL builds GET {base}/{start}/{end}.
func (c *CarbonIntensityClient) WindowURL(start, end time.Time) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, FormatAPITime(start), FormatAPITime(end))
}

// FetchWindow fetches all records between start and end. Any non-2xx status
// is returned as a *CarbonIntensityError; there is no retry.
func (c *CarbonIntensityClient) FetchWindow(ctx context.Context, start, end time.Time) (*model.IntensityResponse, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	u := c.WindowURL(start, end)
	log.Printf("[CarbonIntensity] Request: GET %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	began := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(began)
	if err != nil {
		log.Printf("[CarbonIntensity] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[CarbonIntensity] Response: %s (duration: %v)", resp.Status, duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := "API_ERROR"
		switch resp.StatusCode {
		case http.StatusBadRequest:
			code = "BAD_REQUEST"
		case http.StatusTooManyRequests:
			code = "RATE_LIMIT_EXCEEDED"
		}
		return nil, &CarbonIntensityError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    fmt.Sprintf("API returned status %d for %s", resp.StatusCode, u),
		}
	}

	var result model.IntensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[CarbonIntensity] Success: Received %d intervals (%s to %s)",
		len(result.Data), FormatAPITime(start), FormatAPITime(end))
	return &result, nil
}
