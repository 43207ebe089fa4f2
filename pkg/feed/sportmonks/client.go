// Package sportmonks is the provider client for the SportMonks Football v3
// API.
package sportmonks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/logging"
	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// Name is the provider name as registered in the provider registry.
const Name = "sportmonks"

const defaultBaseURL = "https://api.sportmonks.com"

// Config holds the client configuration.
type Config struct {
	BaseURL string
	APIKey  string // api_token query parameter
	Timeout time.Duration
}

// Client talks to SportMonks and normalizes its payloads.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a SportMonks client.
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
	params := url.Values{"include": {"participants;state;league;scores"}}

	var env fixturesEnvelope
	if err := c.getJSON(ctx, "/v3/football/fixtures/date/"+date, params, &env); err != nil {
		return nil, err
	}

	fixtures := normalizeFixtures(env)
	c.logger.Debug().Str("date", date).Int("fixtures", len(fixtures)).Msg("Fetched fixtures")
	return fixtures, nil
}

// FetchLiveScores returns in-play fixtures. The livescores endpoint only
// serves matches currently on the pitch, so the date is used for filtering
// nothing; it is accepted for interface symmetry.
func (c *Client) FetchLiveScores(ctx context.Context, _ string) ([]unified.Fixture, error) {
	params := url.Values{"include": {"participants;state;league;scores"}}

	var env fixturesEnvelope
	if err := c.getJSON(ctx, "/v3/football/livescores/inplay", params, &env); err != nil {
		return nil, err
	}
	return normalizeFixtures(env), nil
}

// FetchOdds returns raw bookmaker quotes for one provider fixture id.
func (c *Client) FetchOdds(ctx context.Context, providerFixtureID string) ([]odds.Quote, error) {
	params := url.Values{"include": {"bookmaker"}}

	var env oddsEnvelope
	if err := c.getJSON(ctx, "/v3/football/odds/pre-match/fixtures/"+providerFixtureID, params, &env); err != nil {
		return nil, err
	}

	quotes := normalizeOdds(env)
	c.logger.Debug().Str("fixture", providerFixtureID).Int("quotes", len(quotes)).Msg("Fetched odds")
	return quotes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	params.Set("api_token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
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
