// ABOUTME: Situational scorer: table-driven boosts from caller-supplied flags
// ABOUTME: Rules map flag names to per-category scores and extend without code changes

package score

import "github.com/mauromedda/intent-router-go/internal/registry"

// Rules maps a situational flag to per-category scores. Categories not
// listed score neutral. Callers may extend or replace the defaults;
// the engine never interprets flag names itself.
type Rules map[string]map[string]float64

// DefaultRules covers the situational flags the original callers supply.
// Mode categories and command categories share one table since their
// names do not collide.
func DefaultRules() Rules {
	return Rules{
		"last_command_failed": {
			registry.CategoryDebug:  1.0,
			registry.CategoryVerify: 0.8,
			registry.ModeAnalytical: 1.0,
			registry.ModeResting:    0.2,
			registry.ModeCreative:   0.3,
		},
		"project_has_errors": {
			registry.CategoryDebug:    0.9,
			registry.CategoryMaintain: 0.8,
			registry.ModeAnalytical:   0.9,
			registry.ModeMaintenance:  0.7,
		},
		"tests_failing": {
			registry.CategoryVerify: 1.0,
			registry.CategoryDebug:  0.9,
			registry.ModeAnalytical: 0.9,
		},
		"dirty_worktree": {
			registry.CategoryVCS:     0.9,
			registry.ModeReflective:  0.6,
			registry.ModeOperational: 0.6,
		},
		"long_idle": {
			registry.ModeResting:     0.8,
			registry.ModeExploratory: 0.6,
		},
	}
}

// truthy reports whether a caller-supplied flag value activates a rule.
func truthy(v string) bool {
	switch v {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// Situation scores candidates from the active flags. With several active
// flags a candidate gets the mean of the per-flag scores. Informative is
// false when no active flag has a rule.
func Situation(reg *registry.Registry, ns registry.Namespace, flags map[string]string, rules Rules, candidates []string) (Map, bool) {
	var active []map[string]float64
	for name, value := range flags {
		if !truthy(value) {
			continue
		}
		if row, ok := rules[name]; ok {
			active = append(active, row)
		}
	}
	if len(active) == 0 {
		return nil, false
	}

	scores := make(Map, len(candidates))
	for _, id := range candidates {
		category := reg.Category(ns, id)
		sum := 0.0
		for _, row := range active {
			if v, ok := row[category]; ok {
				sum += v
			} else {
				sum += neutralAffinity
			}
		}
		scores[id] = sum / float64(len(active))
	}
	return scores, true
}
