// Package footballdata is the provider client for the football-data.org v4
// REST API. The free tier covers fixtures and live scores but no betting
// markets, so the client implements only the fixture-facing interfaces.
package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/logging"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// Name is the provider name as registered in the provider registry.
const Name = "football-data"

const defaultBaseURL = "https://api.football-data.org"

// Config holds the client configuration.
type Config struct {
	BaseURL string
	APIKey  string // X-Auth-Token credential
	Timeout time.Duration
}

// Client talks to football-data.org and normalizes its payloads.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a football-data.org client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("feed").With().Str("provider", Name).Logger(),
	}
}

// Name implements feed.Source.
func (c *Client) Name() string {
	return Name
}

// FetchFixtures returns the provider's fixtures for a YYYY-MM-DD date.
func (c *Client) FetchFixtures(ctx context.Context, date string) ([]unified.Fixture, error) {
	params := url.Values{"dateFrom": {date}, "dateTo": {date}}

	var env matchesEnvelope
	if err := c.getJSON(ctx, "/v4/matches", params, &env); err != nil {
		return nil, err
	}

	fixtures := normalizeMatches(env)
	c.logger.Debug().Str("date", date).Int("fixtures", len(fixtures)).Msg("Fetched fixtures")
	return fixtures, nil
}

// FetchLiveScores returns in-play fixtures for a date. The v4 API has no
// dedicated live endpoint so the day's matches are filtered client-side.
func (c *Client) FetchLiveScores(ctx context.Context, date string) ([]unified.Fixture, error) {
	fixtures, err := c.FetchFixtures(ctx, date)
	if err != nil {
		return nil, err
	}

	live := fixtures[:0]
	for _, f := range fixtures {
		if f.Status == unified.StatusLive {
			live = append(live, f)
		}
	}
	return live, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", Name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", Name, err)
	}
	return nil
}
