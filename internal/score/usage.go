// ABOUTME: Usage scorer: learned weight multipliers normalized against the user's distribution
// ABOUTME: High-frequency candidates are damped so they cannot permanently dominate

package score

import (
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

// dominanceDamping controls how strongly a candidate's usage share pulls
// its score back toward the middle.
const dominanceDamping = 0.3

// Usage maps each candidate's learned weight multiplier into [0, 1],
// then damps it by the candidate's share of the user's total usage in
// the namespace. Informative is false for new users: a neutral profile
// carries no signal and must not drag confidence down.
func Usage(p *profile.Profile, ns registry.Namespace, candidates []string, minMult, maxMult float64) (Map, bool) {
	if p == nil {
		return nil, false
	}
	total := p.TotalUsage(ns)
	hasWeights := false
	for _, id := range candidates {
		if p.Multiplier(ns, id) != 1.0 {
			hasWeights = true
			break
		}
	}
	if total == 0 && !hasWeights {
		return nil, false
	}

	scores := make(Map, len(candidates))
	for _, id := range candidates {
		m := p.Multiplier(ns, id)
		if m < minMult {
			m = minMult
		}
		if m > maxMult {
			m = maxMult
		}
		s := (m - minMult) / (maxMult - minMult)
		if total > 0 {
			share := float64(p.Count(ns, id)) / float64(total)
			s *= 1 - dominanceDamping*share
		}
		scores[id] = s
	}
	return scores, true
}
