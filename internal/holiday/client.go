// Package holiday resolves public holidays through the Nager.Date API.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rcastillo/autolog/pkg/models"
)

// DefaultBaseURL is the public Nager.Date endpoint.
const DefaultBaseURL = "https://date.nager.at"

// requestTimeout bounds each holiday lookup. The service is best-effort;
// callers degrade to an empty set on failure rather than waiting.
const requestTimeout = 10 * time.Second

// Client queries public holidays for a fixed country.
type Client struct {
	baseURL    string
	country    string
	httpClient *http.Client
}

// NewClient creates a holiday client for the given ISO country code.
func NewClient(country string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		country:    country,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
func NewClientWithBaseURL(country, baseURL string) *Client {
	c := NewClient(country)
	c.baseURL = baseURL
	return c
}

// publicHoliday is the relevant subset of a Nager.Date response row.
type publicHoliday struct {
	Date string `json:"date"`
}

// Holidays returns the set of public holiday dates for the given year. A
// non-200 response or transport failure is returned as an error; the caller
// decides whether to degrade to an empty set.
func (c *Client) Holidays(ctx context.Context, year int) (models.DateSet, error) {
	endpoint := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("holiday API error %d: %s", resp.StatusCode, string(body))
	}

	var rows []publicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding holiday response: %w", err)
	}

	dates := make(models.DateSet, len(rows))
	for _, row := range rows {
		dates.Add(row.Date)
	}
	return dates, nil
}
