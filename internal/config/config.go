// ABOUTME: Centralized engine configuration: thresholds, scorer weights, learning bounds
// ABOUTME: YAML-loadable with defaults and validation; no constant lives inline elsewhere

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config collects every tunable the engine uses. Components receive the
// section they need at construction time; nothing reads this globally.
type Config struct {
	Decision Decision `yaml:"decision"`
	Weights  Weights  `yaml:"weights"`
	Match    Match    `yaml:"match"`
	Learning Learning `yaml:"learning"`
	Governor Governor `yaml:"governor"`
}

// Decision holds the classifier core's decision policy thresholds.
type Decision struct {
	// Accept is the minimum confidence for a Resolved decision.
	Accept float64 `yaml:"accept"`
	// Review is the minimum confidence for a candidate to join a
	// disambiguation prompt.
	Review float64 `yaml:"review"`
	// Margin is the confidence gap below which the top two candidates
	// are treated as tied.
	Margin float64 `yaml:"margin"`
	// UnknownLanguageCeiling caps confidence when the language detector
	// returns Unknown.
	UnknownLanguageCeiling float64 `yaml:"unknown_language_ceiling"`
	// MaxChoices bounds the disambiguation prompt length.
	MaxChoices int `yaml:"max_choices"`
}

// Weights holds the scorer mixing weights. They must sum to 1; the
// classifier renormalizes over the scorers that were informative for a
// given request.
type Weights struct {
	Keyword   float64 `yaml:"keyword"`
	Context   float64 `yaml:"context"`
	Situation float64 `yaml:"situation"`
	Usage     float64 `yaml:"usage"`
}

// Match holds phrase-match quality tiers and fuzzy-match caps.
type Match struct {
	Exact   float64 `yaml:"exact"`
	Stemmed float64 `yaml:"stemmed"`
	Fuzzy   float64 `yaml:"fuzzy"`
	// TiePenalty scales keyword scores when several candidates matched
	// the same span at the same quality.
	TiePenalty float64 `yaml:"tie_penalty"`
	// MaxEditDistance caps the typo tolerance of the fuzzy tier.
	MaxEditDistance int `yaml:"max_edit_distance"`
	// MinFuzzyRunes and MaxFuzzyRunes bound the token lengths eligible
	// for fuzzy matching; very short and very long tokens are excluded.
	MinFuzzyRunes int `yaml:"min_fuzzy_runes"`
	MaxFuzzyRunes int `yaml:"max_fuzzy_runes"`
}

// Learning holds the feedback store's weight-multiplier bounds and steps.
type Learning struct {
	MinMultiplier float64 `yaml:"min_multiplier"`
	MaxMultiplier float64 `yaml:"max_multiplier"`
	AcceptStep    float64 `yaml:"accept_step"`
	SiblingStep   float64 `yaml:"sibling_step"`
	RejectStep    float64 `yaml:"reject_step"`
	// HistoryLimit bounds the per-user outcome ledger.
	HistoryLimit int `yaml:"history_limit"`
	// FlushQueue bounds the async persistence queue; writes beyond it
	// are dropped with a warning rather than blocking classification.
	FlushQueue int `yaml:"flush_queue"`
}

// Governor holds mode-transition damping settings.
type Governor struct {
	// DefaultDwell applies when a ModeDefinition declares no dwell time.
	DefaultDwell time.Duration `yaml:"default_dwell"`
}

// Default returns the engine defaults. The numeric values are starting
// points meant to be tuned from real traffic, not validated truths.
func Default() Config {
	return Config{
		Decision: Decision{
			Accept:                 0.95,
			Review:                 0.85,
			Margin:                 0.05,
			UnknownLanguageCeiling: 0.60,
			MaxChoices:             4,
		},
		Weights: Weights{
			Keyword:   0.40,
			Context:   0.30,
			Situation: 0.20,
			Usage:     0.10,
		},
		Match: Match{
			Exact:           1.0,
			Stemmed:         0.7,
			Fuzzy:           0.4,
			TiePenalty:      0.9,
			MaxEditDistance: 1,
			MinFuzzyRunes:   4,
			MaxFuzzyRunes:   12,
		},
		Learning: Learning{
			MinMultiplier: 0.5,
			MaxMultiplier: 2.0,
			AcceptStep:    0.05,
			SiblingStep:   0.02,
			RejectStep:    0.05,
			HistoryLimit:  50,
			FlushQueue:    128,
		},
		Governor: Governor{
			DefaultDwell: 3 * time.Second,
		},
	}
}

// Load reads a YAML config file and merges it onto the defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency. The engine refuses to start on an
// invalid config; thresholds are never silently clamped.
func (c Config) Validate() error {
	d := c.Decision
	if d.Accept <= 0 || d.Accept > 1 {
		return fmt.Errorf("decision.accept %.2f: must be in (0, 1]", d.Accept)
	}
	if d.Review <= 0 || d.Review > d.Accept {
		return fmt.Errorf("decision.review %.2f: must be in (0, accept]", d.Review)
	}
	if d.Margin < 0 || d.Margin > 1 {
		return fmt.Errorf("decision.margin %.2f: must be in [0, 1]", d.Margin)
	}
	if d.UnknownLanguageCeiling <= 0 || d.UnknownLanguageCeiling > 1 {
		return fmt.Errorf("decision.unknown_language_ceiling %.2f: must be in (0, 1]", d.UnknownLanguageCeiling)
	}
	if d.MaxChoices < 2 {
		return fmt.Errorf("decision.max_choices %d: must be at least 2", d.MaxChoices)
	}

	w := c.Weights
	sum := w.Keyword + w.Context + w.Situation + w.Usage
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights must sum to 1, got %.3f", sum)
	}
	for name, v := range map[string]float64{
		"keyword": w.Keyword, "context": w.Context,
		"situation": w.Situation, "usage": w.Usage,
	} {
		if v < 0 {
			return fmt.Errorf("weights.%s %.2f: must be non-negative", name, v)
		}
	}

	m := c.Match
	if !(m.Fuzzy <= m.Stemmed && m.Stemmed <= m.Exact) {
		return fmt.Errorf("match qualities must be ordered fuzzy <= stemmed <= exact")
	}
	if m.Exact <= 0 || m.Exact > 1 {
		return fmt.Errorf("match.exact %.2f: must be in (0, 1]", m.Exact)
	}
	if m.TiePenalty <= 0 || m.TiePenalty > 1 {
		return fmt.Errorf("match.tie_penalty %.2f: must be in (0, 1]", m.TiePenalty)
	}
	if m.MaxEditDistance < 1 {
		return fmt.Errorf("match.max_edit_distance %d: must be at least 1", m.MaxEditDistance)
	}
	if m.MinFuzzyRunes < 2 || m.MaxFuzzyRunes < m.MinFuzzyRunes {
		return fmt.Errorf("match fuzzy rune bounds [%d, %d] are inconsistent", m.MinFuzzyRunes, m.MaxFuzzyRunes)
	}

	l := c.Learning
	if l.MinMultiplier <= 0 || l.MinMultiplier > 1 {
		return fmt.Errorf("learning.min_multiplier %.2f: must be in (0, 1]", l.MinMultiplier)
	}
	if l.MaxMultiplier < 1 {
		return fmt.Errorf("learning.max_multiplier %.2f: must be at least 1", l.MaxMultiplier)
	}
	for name, v := range map[string]float64{
		"accept_step": l.AcceptStep, "sibling_step": l.SiblingStep, "reject_step": l.RejectStep,
	} {
		if v <= 0 || v >= l.MaxMultiplier-l.MinMultiplier {
			return fmt.Errorf("learning.%s %.2f: must be a small positive step", name, v)
		}
	}
	if l.HistoryLimit < 1 {
		return fmt.Errorf("learning.history_limit %d: must be positive", l.HistoryLimit)
	}
	if l.FlushQueue < 1 {
		return fmt.Errorf("learning.flush_queue %d: must be positive", l.FlushQueue)
	}

	if c.Governor.DefaultDwell < 0 {
		return fmt.Errorf("governor.default_dwell must not be negative")
	}
	return nil
}
