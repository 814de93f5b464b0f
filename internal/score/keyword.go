// ABOUTME: Keyword scorer: best dictionary match quality per candidate with shared-span tie penalty
// ABOUTME: Pure function over dictionary hits; the candidate set for a request is its hit set

package score

import "github.com/mauromedda/intent-router-go/internal/dictionary"

// Map holds one scorer's candidate scores, each in [0, 1].
type Map map[string]float64

// spanKey identifies a matched region at a given quality. Candidates
// sharing a spanKey are indistinguishable on keyword evidence alone.
type spanKey struct {
	start, end int
	quality    float64
}

// Keyword derives each candidate's score from its best hit quality. When
// several candidates matched the same span at the same quality the input
// genuinely underdetermines the choice, and every tied candidate is
// scaled by tiePenalty.
//
// Informative is false when there are no hits at all; the classifier then
// drops the keyword weight instead of averaging in a zero.
func Keyword(hits []dictionary.Hit, tiePenalty float64) (scores Map, informative bool) {
	if len(hits) == 0 {
		return nil, false
	}

	bySpan := make(map[spanKey]map[string]bool)
	scores = make(Map)

	for _, h := range hits {
		if h.Quality > scores[h.ID] {
			scores[h.ID] = h.Quality
		}
		key := spanKey{h.Start, h.End, h.Quality}
		if bySpan[key] == nil {
			bySpan[key] = make(map[string]bool)
		}
		bySpan[key][h.ID] = true
	}

	for id, best := range scores {
		if hasExclusiveBest(hits, bySpan, id, best) {
			continue
		}
		scores[id] = best * tiePenalty
	}
	return scores, true
}

// hasExclusiveBest reports whether the candidate owns at least one
// unshared hit at its best quality. Such a hit rescues it from the
// ambiguity penalty.
func hasExclusiveBest(hits []dictionary.Hit, bySpan map[spanKey]map[string]bool, id string, best float64) bool {
	for _, h := range hits {
		if h.ID != id || h.Quality != best {
			continue
		}
		if len(bySpan[spanKey{h.Start, h.End, h.Quality}]) == 1 {
			return true
		}
	}
	return false
}
