// ABOUTME: Context scorer: fixed category transition-affinity tables over recent history
// ABOUTME: Boosts candidates whose category plausibly follows the user's last activity

package score

import "github.com/mauromedda/intent-router-go/internal/registry"

// History is the caller-supplied recent activity, most recent last.
type History struct {
	Commands []string // command ids, oldest first
	Modes    []string // mode ids, oldest first
}

// LastCommand returns the most recent command id, or "".
func (h History) LastCommand() string {
	if len(h.Commands) == 0 {
		return ""
	}
	return h.Commands[len(h.Commands)-1]
}

// LastMode returns the most recent mode id, or "".
func (h History) LastMode() string {
	if len(h.Modes) == 0 {
		return ""
	}
	return h.Modes[len(h.Modes)-1]
}

// neutralAffinity applies to transitions the tables do not list.
const neutralAffinity = 0.5

// commandAffinity maps previous command category to likely next command
// categories. This is a small fixed table, not a learned model.
var commandAffinity = map[string]map[string]float64{
	registry.CategoryBuild: {
		registry.CategoryVerify:  0.9,
		registry.CategoryVCS:     0.8,
		registry.CategoryBuild:   0.7,
		registry.CategoryReview:  0.7,
		registry.CategoryExplore: 0.4,
	},
	registry.CategoryDebug: {
		registry.CategoryVerify:   0.9,
		registry.CategoryDebug:    0.9,
		registry.CategoryVCS:      0.6,
		registry.CategoryMaintain: 0.6,
	},
	registry.CategoryVerify: {
		registry.CategoryDebug:  0.9,
		registry.CategoryVCS:    0.8,
		registry.CategoryVerify: 0.6,
	},
	registry.CategoryMaintain: {
		registry.CategoryVerify:   0.9,
		registry.CategoryMaintain: 0.7,
		registry.CategoryVCS:      0.7,
	},
	registry.CategoryExplore: {
		registry.CategoryExplain: 0.8,
		registry.CategoryExplore: 0.7,
		registry.CategoryBuild:   0.6,
		registry.CategoryDebug:   0.6,
	},
	registry.CategoryReview: {
		registry.CategoryMaintain: 0.8,
		registry.CategoryDebug:    0.7,
		registry.CategoryVCS:      0.7,
	},
	registry.CategoryVCS: {
		registry.CategoryBuild:  0.7,
		registry.CategoryVerify: 0.6,
	},
}

// modeAffinity maps previous mode category to likely next mode
// categories: testing-flavored modes follow constructive work more
// naturally than they follow research.
var modeAffinity = map[string]map[string]float64{
	registry.ModeConstructive: {
		registry.ModeAnalytical:   0.9,
		registry.ModeReflective:   0.8,
		registry.ModeConstructive: 0.7,
		registry.ModeMaintenance:  0.7,
		registry.ModeResting:      0.4,
	},
	registry.ModeAnalytical: {
		registry.ModeAnalytical:   0.9,
		registry.ModeConstructive: 0.8,
		registry.ModeMaintenance:  0.7,
		registry.ModeCreative:     0.4,
	},
	registry.ModeCreative: {
		registry.ModeConstructive: 0.9,
		registry.ModeCreative:     0.8,
		registry.ModeExploratory:  0.7,
		registry.ModeAnalytical:   0.4,
	},
	registry.ModeExploratory: {
		registry.ModeCreative:      0.8,
		registry.ModeCommunicative: 0.7,
		registry.ModeExploratory:   0.7,
		registry.ModeConstructive:  0.6,
		registry.ModeAnalytical:    0.4,
	},
	registry.ModeReflective: {
		registry.ModeMaintenance:   0.8,
		registry.ModeCommunicative: 0.7,
		registry.ModeConstructive:  0.6,
	},
	registry.ModeOperational: {
		registry.ModeAnalytical:  0.8,
		registry.ModeOperational: 0.7,
		registry.ModeResting:     0.6,
	},
	registry.ModeMaintenance: {
		registry.ModeReflective:  0.7,
		registry.ModeMaintenance: 0.7,
		registry.ModeOperational: 0.6,
	},
	registry.ModeCommunicative: {
		registry.ModeResting:      0.7,
		registry.ModeExploratory:  0.6,
		registry.ModeConstructive: 0.6,
	},
	registry.ModeResting: {
		registry.ModeExploratory: 0.7,
		registry.ModeCreative:    0.6,
	},
}

// Context scores candidates by transition affinity from the most recent
// history entry in the same namespace. Informative is false without
// history; a first request carries no context signal.
func Context(reg *registry.Registry, ns registry.Namespace, hist History, candidates []string) (Map, bool) {
	var prevID string
	var table map[string]map[string]float64
	switch ns {
	case registry.NamespaceCommand:
		prevID = hist.LastCommand()
		table = commandAffinity
	case registry.NamespaceMode:
		prevID = hist.LastMode()
		table = modeAffinity
	}
	if prevID == "" {
		return nil, false
	}
	prevCategory := reg.Category(ns, prevID)
	if prevCategory == "" {
		return nil, false
	}

	scores := make(Map, len(candidates))
	for _, id := range candidates {
		scores[id] = affinity(table, prevCategory, reg.Category(ns, id))
	}
	return scores, true
}

func affinity(table map[string]map[string]float64, from, to string) float64 {
	if row, ok := table[from]; ok {
		if v, ok := row[to]; ok {
			return v
		}
	}
	return neutralAffinity
}
