package provider

import "sort"

// Registry is an ordered set of provider descriptors. Iteration order is
// ascending priority and fixed for the process lifetime.
type Registry struct {
	providers []Descriptor
	byName    map[string]Descriptor
}

// NewRegistry builds a registry from descriptors, sorted ascending by
// priority. The input slice is not retained.
func NewRegistry(descriptors []Descriptor) *Registry {
	providers := make([]Descriptor, len(descriptors))
	copy(providers, descriptors)

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority < providers[j].Priority
	})

	byName := make(map[string]Descriptor, len(providers))
	for _, d := range providers {
		byName[d.Name] = d
	}

	return &Registry{providers: providers, byName: byName}
}

// DefaultRegistry returns the stock provider set in fallback order.
func DefaultRegistry() *Registry {
	return NewRegistry([]Descriptor{
		{
			Name:      "api-football",
			Priority:  1,
			Cost:      CostPaid,
			RateLimit: 30,
			Capabilities: Capabilities{
				CapFixtures:    true,
				CapLiveScores:  true,
				CapOdds:        true,
				CapStatistics:  true,
				CapPredictions: true,
				CapLeagues:     true,
				CapTeams:       true,
			},
		},
		{
			Name:      "football-data",
			Priority:  2,
			Cost:      CostFree,
			RateLimit: 10,
			Capabilities: Capabilities{
				CapFixtures:   true,
				CapLiveScores: true,
				CapLeagues:    true,
				CapTeams:      true,
			},
		},
		{
			Name:      "sportmonks",
			Priority:  3,
			Cost:      CostPaid,
			RateLimit: 60,
			Capabilities: Capabilities{
				CapFixtures:   true,
				CapLiveScores: true,
				CapOdds:       true,
				CapStatistics: true,
				CapTeams:      true,
			},
		},
	})
}

// All returns every descriptor in fallback order. Callers must not mutate
// the returned slice.
func (r *Registry) All() []Descriptor {
	return r.providers
}

// CandidatesFor returns, in fallback order, the providers whose capability
// flag for the operation is set.
func (r *Registry) CandidatesFor(cap Capability) []Descriptor {
	var candidates []Descriptor
	for _, d := range r.providers {
		if d.Capabilities.Has(cap) {
			candidates = append(candidates, d)
		}
	}
	return candidates
}

// Get looks up a descriptor by name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns the provider names in fallback order. Used for deterministic
// bulk cache invalidation.
func (r *Registry) Names() []string {
	names := make([]string, len(r.providers))
	for i, d := range r.providers {
		names[i] = d.Name
	}
	return names
}
