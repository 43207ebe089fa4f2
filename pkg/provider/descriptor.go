// Package provider holds the static upstream provider metadata: who exists,
// what they can serve, in which order to try them, and how hard they may be
// hit.
package provider

// Capability names one feature a provider can serve.
type Capability string

const (
	CapFixtures    Capability = "fixtures"
	CapLiveScores  Capability = "live_scores"
	CapOdds        Capability = "odds"
	CapStatistics  Capability = "statistics"
	CapPredictions Capability = "predictions"
	CapLeagues     Capability = "leagues"
	CapTeams       Capability = "teams"
)

// Capabilities is the set of features a provider supports.
type Capabilities map[Capability]bool

// Has reports whether the capability is supported.
func (c Capabilities) Has(cap Capability) bool {
	return c[cap]
}

// CostTier labels how expensive a provider is to call.
type CostTier string

const (
	CostFree CostTier = "free"
	CostPaid CostTier = "paid"
)

// Descriptor is the immutable metadata for one upstream provider. Lower
// priority means tried first; priority order defines the deterministic
// fallback sequence for every multi-provider operation.
type Descriptor struct {
	Name         string
	Priority     int
	Cost         CostTier
	RateLimit    int // requests per minute
	Capabilities Capabilities
}
