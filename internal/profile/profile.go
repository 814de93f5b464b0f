// ABOUTME: UserProfile model: usage counters, bounded weight multipliers, outcome ledger
// ABOUTME: Versioned snapshots; the learning store owns the single mutable copy per user

package profile

import (
	"fmt"
	"time"

	"github.com/mauromedda/intent-router-go/internal/registry"
)

// Record is one entry of the per-user outcome ledger. RequestID ties
// the record back to the classification it answers; the learning store
// uses it to detect replayed feedback.
type Record struct {
	RequestID   string             `json:"request_id,omitempty"`
	Namespace   registry.Namespace `json:"namespace"`
	CandidateID string             `json:"candidate_id"`
	Outcome     string             `json:"outcome"` // accepted | corrected | rejected
	CorrectedTo string             `json:"corrected_to,omitempty"`
	At          time.Time          `json:"at"`
}

// Profile is the persistent per-user learning state. Callers outside the
// learning store only ever see clones; the store serializes writes.
type Profile struct {
	UserID       string             `json:"user_id"`
	Version      int64              `json:"version"`
	LastLanguage string             `json:"last_language,omitempty"`
	Usage        map[string]int     `json:"usage,omitempty"`
	Weights      map[string]float64 `json:"weights,omitempty"`
	Recent       []Record           `json:"recent,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// New creates an empty profile for a first-time user.
func New(userID string) *Profile {
	return &Profile{
		UserID:  userID,
		Usage:   make(map[string]int),
		Weights: make(map[string]float64),
	}
}

// Key builds the flat map key for a candidate within a namespace.
func Key(ns registry.Namespace, id string) string {
	return fmt.Sprintf("%s/%s", ns, id)
}

// Multiplier returns the learned weight multiplier for a candidate,
// or neutral 1.0 when none has been learned yet.
func (p *Profile) Multiplier(ns registry.Namespace, id string) float64 {
	if p == nil {
		return 1.0
	}
	if w, ok := p.Weights[Key(ns, id)]; ok {
		return w
	}
	return 1.0
}

// Count returns the usage counter for a candidate.
func (p *Profile) Count(ns registry.Namespace, id string) int {
	if p == nil {
		return 0
	}
	return p.Usage[Key(ns, id)]
}

// TotalUsage sums usage counters across a namespace.
func (p *Profile) TotalUsage(ns registry.Namespace) int {
	if p == nil {
		return 0
	}
	total := 0
	prefix := string(ns) + "/"
	for k, n := range p.Usage {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			total += n
		}
	}
	return total
}

// Clone returns a deep copy. Scorers read clones so concurrent feedback
// writes never race a classification in flight.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := &Profile{
		UserID:       p.UserID,
		Version:      p.Version,
		LastLanguage: p.LastLanguage,
		Usage:        make(map[string]int, len(p.Usage)),
		Weights:      make(map[string]float64, len(p.Weights)),
		Recent:       append([]Record(nil), p.Recent...),
		UpdatedAt:    p.UpdatedAt,
	}
	for k, v := range p.Usage {
		out.Usage[k] = v
	}
	for k, v := range p.Weights {
		out.Weights[k] = v
	}
	return out
}
