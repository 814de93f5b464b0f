// ABOUTME: Classifier core: combines the four sub-scores per candidate and applies decision policy
// ABOUTME: Confidence is a pure function of the recorded sub-scores; thresholds come from config

package classify

import (
	"sort"

	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/dictionary"
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/score"
)

// SubScores records every input the confidence function depends on.
// A scorer that produced no signal for the request is marked
// uninformative and its weight is excluded rather than averaged as zero.
type SubScores struct {
	Keyword   float64 `json:"keyword"`
	Context   float64 `json:"context"`
	Situation float64 `json:"situation"`
	Usage     float64 `json:"usage"`

	KeywordOK   bool `json:"keyword_ok"`
	ContextOK   bool `json:"context_ok"`
	SituationOK bool `json:"situation_ok"`
	UsageOK     bool `json:"usage_ok"`

	// Ceiling caps the combined confidence; non-zero when the language
	// detector returned Unknown. Recorded here so confidence stays a
	// pure function of this struct.
	Ceiling float64 `json:"ceiling,omitempty"`
}

// Span is a matched token region that contributed to a candidate.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Candidate is one command or mode competing for the decision.
type Candidate struct {
	ID         string             `json:"id"`
	Namespace  registry.Namespace `json:"namespace"`
	Scores     SubScores          `json:"scores"`
	Confidence float64            `json:"confidence"`
	Spans      []Span             `json:"spans,omitempty"`
}

// Outcome is the decision variant for one namespace.
type Outcome string

const (
	OutcomeResolved   Outcome = "resolved"
	OutcomeAmbiguous  Outcome = "ambiguous"
	OutcomeUnresolved Outcome = "unresolved"
)

// Decision is the ranked result of classifying one namespace.
type Decision struct {
	Outcome Outcome     `json:"outcome"`
	Ranked  []Candidate `json:"ranked,omitempty"`
}

// Best returns the top candidate of a resolved decision.
func (d Decision) Best() (Candidate, bool) {
	if d.Outcome != OutcomeResolved || len(d.Ranked) == 0 {
		return Candidate{}, false
	}
	return d.Ranked[0], true
}

// Confidence combines sub-scores with the configured weights,
// renormalized over the informative scorers, then applies the ceiling.
// Same sub-scores always produce the same confidence.
func Confidence(s SubScores, w config.Weights) float64 {
	sum, wsum := 0.0, 0.0
	if s.KeywordOK {
		sum += w.Keyword * s.Keyword
		wsum += w.Keyword
	}
	if s.ContextOK {
		sum += w.Context * s.Context
		wsum += w.Context
	}
	if s.SituationOK {
		sum += w.Situation * s.Situation
		wsum += w.Situation
	}
	if s.UsageOK {
		sum += w.Usage * s.Usage
		wsum += w.Usage
	}
	if wsum == 0 {
		return 0
	}
	c := sum / wsum
	if s.Ceiling > 0 && c > s.Ceiling {
		c = s.Ceiling
	}
	return c
}

// Core runs the scoring and decision pipeline for one namespace at a
// time. It holds no per-request state and is safe for concurrent use.
type Core struct {
	reg        *registry.Registry
	decision   config.Decision
	weights    config.Weights
	learning   config.Learning
	rules      score.Rules
	tiePenalty float64
}

// NewCore builds a classifier core. rules may be nil to use the default
// situational table.
func NewCore(reg *registry.Registry, cfg config.Config, rules score.Rules) *Core {
	if rules == nil {
		rules = score.DefaultRules()
	}
	return &Core{
		reg:        reg,
		decision:   cfg.Decision,
		weights:    cfg.Weights,
		learning:   cfg.Learning,
		rules:      rules,
		tiePenalty: cfg.Match.TiePenalty,
	}
}

// Input bundles the per-request evidence a namespace classification
// consumes.
type Input struct {
	Namespace registry.Namespace
	Hits      []dictionary.Hit
	History   score.History
	Flags     map[string]string
	Profile   *profile.Profile
	// UnknownLanguage lowers the achievable confidence ceiling.
	UnknownLanguage bool
	// Exclude removes candidates from consideration, used when a
	// disambiguation round-trip re-enters the pipeline.
	Exclude []string
}

// Classify ranks the candidates for one namespace and applies the
// decision policy.
func (c *Core) Classify(in Input) Decision {
	ranked := c.rank(in)
	return c.decide(ranked)
}

func (c *Core) rank(in Input) []Candidate {
	excluded := make(map[string]bool, len(in.Exclude))
	for _, id := range in.Exclude {
		excluded[id] = true
	}

	hits := in.Hits
	if len(excluded) > 0 {
		kept := make([]dictionary.Hit, 0, len(hits))
		for _, h := range hits {
			if !excluded[h.ID] {
				kept = append(kept, h)
			}
		}
		hits = kept
	}

	keyword, keywordOK := score.Keyword(hits, c.tiePenalty)
	if !keywordOK {
		return nil
	}

	ids := make([]string, 0, len(keyword))
	for id := range keyword {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	context, contextOK := score.Context(c.reg, in.Namespace, in.History, ids)
	situation, situationOK := score.Situation(c.reg, in.Namespace, in.Flags, c.rules, ids)
	usage, usageOK := score.Usage(in.Profile, in.Namespace, ids, c.learning.MinMultiplier, c.learning.MaxMultiplier)

	var ceiling float64
	if in.UnknownLanguage {
		ceiling = c.decision.UnknownLanguageCeiling
	}

	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		s := SubScores{
			Keyword:     keyword[id],
			KeywordOK:   true,
			Context:     context[id],
			ContextOK:   contextOK,
			Situation:   situation[id],
			SituationOK: situationOK,
			Usage:       usage[id],
			UsageOK:     usageOK,
			Ceiling:     ceiling,
		}
		candidates = append(candidates, Candidate{
			ID:         id,
			Namespace:  in.Namespace,
			Scores:     s,
			Confidence: Confidence(s, c.weights),
			Spans:      spansFor(hits, id),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Confidence != candidates[b].Confidence {
			return candidates[a].Confidence > candidates[b].Confidence
		}
		return candidates[a].ID < candidates[b].ID
	})
	return candidates
}

// decide applies the decision policy: a close tie between two reviewable
// candidates wins over acceptance, so an even split never auto-executes.
func (c *Core) decide(ranked []Candidate) Decision {
	if len(ranked) == 0 {
		return Decision{Outcome: OutcomeUnresolved}
	}
	top := ranked[0]
	if len(ranked) >= 2 {
		second := ranked[1]
		if top.Confidence >= c.decision.Review &&
			second.Confidence >= c.decision.Review &&
			top.Confidence-second.Confidence <= c.decision.Margin {
			return Decision{Outcome: OutcomeAmbiguous, Ranked: ranked}
		}
	}
	if top.Confidence >= c.decision.Accept {
		return Decision{Outcome: OutcomeResolved, Ranked: ranked}
	}
	return Decision{Outcome: OutcomeUnresolved, Ranked: ranked}
}

func spansFor(hits []dictionary.Hit, id string) []Span {
	var out []Span
	for _, h := range hits {
		if h.ID == id {
			out = append(out, Span{Start: h.Start, End: h.End})
		}
	}
	return out
}

// PrimarySpan returns the widest span recorded for the candidate; the
// parameter extractor removes it from the input before pulling the
// remainder.
func (c Candidate) PrimarySpan() (Span, bool) {
	if len(c.Spans) == 0 {
		return Span{}, false
	}
	best := c.Spans[0]
	for _, s := range c.Spans[1:] {
		if s.End-s.Start > best.End-best.Start {
			best = s
		}
	}
	return best, true
}
