// Package apifootball is the provider client for the API-Football v3 REST
// API (api-sports.io).
package apifootball

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
const Name = "api-football"

const defaultBaseURL = "https://v3.football.api-sports.io"

// Config holds the client configuration.
type Config struct {
	// BaseURL overrides the production endpoint (tests).
	BaseURL string

	// APIKey is the x-apisports-key credential.
	APIKey string

	// Timeout bounds every upstream call.
	Timeout time.Duration
}

// Client talks to API-Football and normalizes its payloads.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an API-Football client.
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
	var env fixturesEnvelope
	if err := c.getJSON(ctx, "/fixtures", url.Values{"date": {date}}, &env); err != nil {
		return nil, err
	}

	fixtures := normalizeFixtures(env)
	c.logger.Debug().Str("date", date).Int("fixtures", len(fixtures)).Msg("Fetched fixtures")
	return fixtures, nil
}

// FetchLiveScores returns in-play fixtures for a date.
func (c *Client) FetchLiveScores(ctx context.Context, date string) ([]unified.Fixture, error) {
	var env fixturesEnvelope
	if err := c.getJSON(ctx, "/fixtures", url.Values{"date": {date}, "live": {"all"}}, &env); err != nil {
		return nil, err
	}
	return normalizeFixtures(env), nil
}

// FetchOdds returns raw bookmaker quotes for one provider fixture id.
func (c *Client) FetchOdds(ctx context.Context, providerFixtureID string) ([]odds.Quote, error) {
	var env oddsEnvelope
	if err := c.getJSON(ctx, "/odds", url.Values{"fixture": {providerFixtureID}}, &env); err != nil {
		return nil, err
	}

	quotes := normalizeOdds(env)
	c.logger.Debug().Str("fixture", providerFixtureID).Int("quotes", len(quotes)).Msg("Fetched odds")
	return quotes, nil
}

// FetchTeamLogo resolves a team's logo URL.
func (c *Client) FetchTeamLogo(ctx context.Context, teamID string) (string, error) {
	var env teamEnvelope
	if err := c.getJSON(ctx, "/teams", url.Values{"id": {teamID}}, &env); err != nil {
		return "", err
	}
	if len(env.Response) == 0 {
		return "", fmt.Errorf("team %s not found", teamID)
	}
	return env.Response[0].Team.Logo, nil
}

// getJSON performs one bounded GET and decodes the response body into dest.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
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
