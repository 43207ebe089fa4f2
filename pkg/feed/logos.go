package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// LogoFetchConfig bounds the bulk logo loader.
type LogoFetchConfig struct {
	// MaxConcurrency is the maximum number of parallel logo requests.
	MaxConcurrency int

	// Timeout per logo fetch.
	Timeout time.Duration
}

// DefaultLogoFetchConfig returns safe defaults.
func DefaultLogoFetchConfig() LogoFetchConfig {
	return LogoFetchConfig{
		MaxConcurrency: 5,
		Timeout:        10 * time.Second,
	}
}

type logoResult struct {
	teamID string
	logo   string
	err    error
}

// FetchLogos resolves logo URLs for a set of team IDs using a bounded worker
// pool. Failed lookups are logged and skipped; the returned map holds the
// teams that resolved. Partial results are expected and fine: logos are
// decoration, not data.
func FetchLogos(ctx context.Context, src LogoSource, teamIDs []string, cfg LogoFetchConfig) map[string]string {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	start := time.Now()

	queue := make(chan string, len(teamIDs))
	results := make(chan logoResult, len(teamIDs))

	for _, id := range teamIDs {
		queue <- id
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < cfg.MaxConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for teamID := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}

				fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
				logo, err := src.FetchTeamLogo(fetchCtx, teamID)
				cancel()

				results <- logoResult{teamID: teamID, logo: logo, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	logos := make(map[string]string, len(teamIDs))
	failed := 0
	for result := range results {
		if result.err != nil {
			failed++
			log.Warn().
				Err(result.err).
				Str("team_id", result.teamID).
				Msg("Logo fetch failed")
			continue
		}
		if result.logo != "" {
			logos[result.teamID] = result.logo
		}
	}

	log.Debug().
		Int("requested", len(teamIDs)).
		Int("resolved", len(logos)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Logo batch complete")

	return logos
}
