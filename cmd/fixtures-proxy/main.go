// Command fixtures-proxy serves cached, provider-fallback football data over
// a small JSON HTTP API. Configuration comes from the environment (a .env
// file is honored when present).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/cache"
	"github.com/matchpulse/football-data-client/pkg/feed"
	"github.com/matchpulse/football-data-client/pkg/feed/apifootball"
	"github.com/matchpulse/football-data-client/pkg/feed/footballdata"
	"github.com/matchpulse/football-data-client/pkg/feed/sportmonks"
	"github.com/matchpulse/football-data-client/pkg/logging"
	"github.com/matchpulse/football-data-client/pkg/orchestrator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	ctx := context.Background()

	store, stopCache := cache.NewStoreFromEnv(ctx, os.Getenv("REDIS_URL"))
	defer stopCache()

	manager := cache.NewManager(store, cache.DefaultTTLConfig())

	o := orchestrator.New(orchestrator.Config{
		Cache:   manager,
		Sources: buildSources(logger),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler(store))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/fixtures", fixturesHandler(o))
	mux.HandleFunc("/api/fixtures/", oddsHandler(o))
	mux.HandleFunc("/api/live", liveHandler(o))
	mux.HandleFunc("/api/providers", providersHandler(o))

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("cache", store.BackendName()).Msg("Starting fixtures proxy")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}

// buildSources wires a client for every provider whose API key is configured.
// Unconfigured providers are simply absent and show up as "not configured" in
// fallback reasons.
func buildSources(logger zerolog.Logger) []feed.Source {
	var sources []feed.Source

	if key := os.Getenv("API_FOOTBALL_KEY"); key != "" {
		sources = append(sources, apifootball.NewClient(apifootball.Config{
			BaseURL: os.Getenv("API_FOOTBALL_BASE_URL"),
			APIKey:  key,
		}))
	}
	if key := os.Getenv("FOOTBALL_DATA_KEY"); key != "" {
		sources = append(sources, footballdata.NewClient(footballdata.Config{
			BaseURL: os.Getenv("FOOTBALL_DATA_BASE_URL"),
			APIKey:  key,
		}))
	}
	if key := os.Getenv("SPORTMONKS_KEY"); key != "" {
		sources = append(sources, sportmonks.NewClient(sportmonks.Config{
			BaseURL: os.Getenv("SPORTMONKS_BASE_URL"),
			APIKey:  key,
		}))
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	logger.Info().Strs("providers", names).Msg("Configured providers")

	return sources
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func readyHandler(store *cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.IsConnected(r.Context()) {
			http.Error(w, "cache backend not connected", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// envelope is the uniform response body: payload plus provenance.
type envelope struct {
	Data     any    `json:"data"`
	Provider string `json:"provider,omitempty"`
	Cached   bool   `json:"cached"`
}

func fixturesHandler(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := dateParam(w, r)
		if !ok {
			return
		}

		result, err := o.FetchFixtures(r.Context(), date)
		if err != nil {
			writeFetchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: result.Fixtures, Provider: result.Provider, Cached: result.Cached})
	}
}

func liveHandler(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := dateParam(w, r)
		if !ok {
			return
		}

		result, err := o.FetchLiveScores(r.Context(), date)
		if err != nil {
			writeFetchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: result.Fixtures, Provider: result.Provider, Cached: result.Cached})
	}
}

// oddsHandler serves /api/fixtures/{id}/odds. The id is the provider-prefixed
// unified fixture id, e.g. api-football-868549; odds only ever come from the
// provider named in the prefix.
func oddsHandler(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/fixtures/")
		fixtureID, op, found := strings.Cut(rest, "/")
		if !found || op != "odds" || fixtureID == "" {
			http.NotFound(w, r)
			return
		}

		result, err := o.FetchOdds(r.Context(), fixtureID)
		if err != nil {
			if errors.Is(err, orchestrator.ErrUnknown) {
				http.Error(w, "unknown fixture id", http.StatusNotFound)
				return
			}
			writeFetchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: result.Odds, Provider: result.Provider, Cached: result.Cached})
	}
}

func providersHandler(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{Data: o.ProviderStatuses()})
	}
}

func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
		return date, true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

// writeFetchError maps provider exhaustion onto 502 with the per-provider
// reasons in the body.
func writeFetchError(w http.ResponseWriter, err error) {
	var exhaustion *orchestrator.ExhaustionError
	if errors.As(err, &exhaustion) {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":    "all providers exhausted",
			"failures": exhaustion.Failures,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
