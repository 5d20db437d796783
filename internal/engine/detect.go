package engine

import (
	"strings"

	"github.com/gcbaptista/styleguide-search/config"
)

// DetectDomain guesses the domain a query is about.
// Each domain scores one point per keyword found as a substring of the lowercased
// query. The highest score wins, ties go to the domain declared first, and a
// query matching no keyword gets the registry's default domain.
func DetectDomain(registry *config.Registry, query string) string {
	queryLower := strings.ToLower(query)

	bestDomain := ""
	bestScore := 0
	for _, dk := range registry.Detection() {
		score := 0
		for _, keyword := range dk.Keywords {
			if strings.Contains(queryLower, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestDomain = dk.Domain
			bestScore = score
		}
	}

	if bestScore == 0 {
		return registry.DefaultDomain()
	}
	return bestDomain
}

// DetectDomain guesses the domain of the query using the engine's registry.
func (e *Engine) DetectDomain(query string) string {
	domain := DetectDomain(e.registry, query)
	e.metrics.ObserveDetection(domain)
	return domain
}
