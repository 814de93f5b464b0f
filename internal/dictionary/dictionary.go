// ABOUTME: Compiled phrase dictionary: per-language token-sequence index over both namespaces
// ABOUTME: Longest-match-first scan with exact, stemmed, and typo-tolerant tiers plus slash fast path

package dictionary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/lang"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

// Tier identifies which match tier produced a hit.
type Tier string

const (
	TierSlash   Tier = "slash"
	TierExact   Tier = "exact"
	TierStemmed Tier = "stemmed"
	TierFuzzy   Tier = "fuzzy"
)

// Hit is one dictionary match: a candidate id, the token span that matched,
// and the match quality.
type Hit struct {
	ID        string
	Namespace registry.Namespace
	Start     int // token index, inclusive
	End       int // token index, exclusive
	Quality   float64
	Phrase    string
	Tier      Tier
}

// entry is one compiled phrase.
type entry struct {
	tokens []string
	id     string
	ns     registry.Namespace
	phrase string
}

// langIndex indexes one language's phrases by their first token.
type langIndex struct {
	byFirst map[string][]entry
	maxLen  int
}

// Dictionary is the read-only compiled phrase structure shared by both
// namespaces. Built once at startup from the registry.
type Dictionary struct {
	cfg   config.Match
	langs map[lang.Tag]*langIndex
	slash map[string][]string // slash literal -> command ids
}

// Compile normalizes every registered phrase with the same pipeline used
// on live input and builds the lookup indexes. A phrase that normalizes
// to nothing is a registry defect and fails compilation.
func Compile(reg *registry.Registry, cfg config.Match) (*Dictionary, error) {
	d := &Dictionary{
		cfg:   cfg,
		langs: make(map[lang.Tag]*langIndex, len(lang.Supported)),
		slash: make(map[string][]string),
	}
	for _, tag := range lang.Supported {
		d.langs[tag] = &langIndex{byFirst: make(map[string][]entry)}
	}

	for _, c := range reg.Commands() {
		for tag, phrases := range c.Phrases {
			if err := d.index(tag, phrases, c.ID, registry.NamespaceCommand); err != nil {
				return nil, fmt.Errorf("command %s: %w", c.ID, err)
			}
		}
		for _, s := range c.Slash {
			key := strings.ToLower(s)
			d.slash[key] = append(d.slash[key], c.ID)
		}
	}
	for _, m := range reg.Modes() {
		for tag, phrases := range m.Phrases {
			if err := d.index(tag, phrases, m.ID, registry.NamespaceMode); err != nil {
				return nil, fmt.Errorf("mode %s: %w", m.ID, err)
			}
		}
	}
	for _, ids := range d.slash {
		sort.Strings(ids)
	}
	return d, nil
}

func (d *Dictionary) index(tag lang.Tag, phrases []string, id string, ns registry.Namespace) error {
	idx, ok := d.langs[tag]
	if !ok {
		return fmt.Errorf("unsupported phrase language %q", tag)
	}
	for _, phrase := range phrases {
		res, err := textnorm.Normalize(phrase)
		if err != nil {
			return fmt.Errorf("phrase %q: %w", phrase, err)
		}
		tokens := make([]string, len(res.Tokens))
		for i, t := range res.Tokens {
			tokens[i] = t.Text
		}
		e := entry{tokens: tokens, id: id, ns: ns, phrase: strings.Join(tokens, " ")}
		idx.byFirst[tokens[0]] = append(idx.byFirst[tokens[0]], e)
		if len(tokens) > idx.maxLen {
			idx.maxLen = len(tokens)
		}
	}
	return nil
}

// Lookup scans the normalized token stream for phrase matches in the
// given namespace. Unknown-language requests fall back to the
// language-agnostic subset: slash-command literals only.
func (d *Dictionary) Lookup(res textnorm.Result, tag lang.Tag, ns registry.Namespace) []Hit {
	hits := d.slashHits(res, ns)

	idx, ok := d.langs[tag]
	if !ok {
		return hits
	}

	i := 0
	for i < len(res.Tokens) {
		span, matched := d.matchAt(idx, res.Tokens, i, ns)
		if len(matched) == 0 {
			i++
			continue
		}
		hits = append(hits, matched...)
		i += span
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Quality != hits[b].Quality {
			return hits[a].Quality > hits[b].Quality
		}
		return hits[a].ID < hits[b].ID
	})
	return hits
}

// matchAt finds the longest phrase span starting at token position i.
// Within the longest matching span, only the best quality tier survives;
// equal-quality candidates are all returned so the keyword scorer can
// apply its ambiguity penalty.
func (d *Dictionary) matchAt(idx *langIndex, tokens []textnorm.Token, i int, ns registry.Namespace) (int, []Hit) {
	maxLen := idx.maxLen
	if rest := len(tokens) - i; rest < maxLen {
		maxLen = rest
	}

	for length := maxLen; length >= 1; length-- {
		var (
			best     float64
			bestHits []Hit
		)
		for _, e := range d.entriesAt(idx, tokens[i].Text) {
			if e.ns != ns || len(e.tokens) != length {
				continue
			}
			q, tier := d.matchQuality(e.tokens, tokens[i:i+length])
			if q <= 0 || q < best {
				continue
			}
			hit := Hit{
				ID:        e.id,
				Namespace: e.ns,
				Start:     i,
				End:       i + length,
				Quality:   q,
				Phrase:    e.phrase,
				Tier:      tier,
			}
			if q > best {
				best = q
				bestHits = bestHits[:0]
			}
			bestHits = append(bestHits, hit)
		}
		if len(bestHits) > 0 {
			return length, dedupe(bestHits)
		}
	}
	return 0, nil
}

// entriesAt returns candidate entries whose first phrase token could match
// the input token at any tier: exact bucket plus fuzzy-reachable buckets.
func (d *Dictionary) entriesAt(idx *langIndex, tok string) []entry {
	exact := idx.byFirst[tok]
	// Fuzzy and stemmed first tokens live in other buckets; a full bucket
	// scan is acceptable because per-language phrase counts are small.
	var out []entry
	out = append(out, exact...)
	for first, entries := range idx.byFirst {
		if first == tok {
			continue
		}
		if d.tokenQuality(first, tok) > 0 {
			out = append(out, entries...)
		}
	}
	return out
}

// matchQuality scores a phrase against an equal-length token window. The
// phrase quality is the weakest token pair; one typo degrades the whole
// match to the fuzzy tier.
func (d *Dictionary) matchQuality(phrase []string, window []textnorm.Token) (float64, Tier) {
	q := d.cfg.Exact
	for k, pt := range phrase {
		tq := d.tokenQuality(pt, window[k].Text)
		if tq == 0 {
			return 0, ""
		}
		if tq < q {
			q = tq
		}
	}
	switch q {
	case d.cfg.Exact:
		return q, TierExact
	case d.cfg.Stemmed:
		return q, TierStemmed
	default:
		return q, TierFuzzy
	}
}

// stemSuffixes are the inflection endings the stemmed tier tolerates on
// Latin tokens, mirroring the suffix set the keyword heuristics allowed.
var stemSuffixes = []string{"s", "es", "ed", "ing", "er"}

func (d *Dictionary) tokenQuality(phraseTok, inputTok string) float64 {
	if phraseTok == inputTok {
		return d.cfg.Exact
	}
	if stemEqual(phraseTok, inputTok) {
		return d.cfg.Stemmed
	}
	if d.fuzzyEligible(phraseTok) && d.fuzzyEligible(inputTok) {
		if _, ok := textnorm.BoundedEditDistance(phraseTok, inputTok, d.cfg.MaxEditDistance); ok {
			return d.cfg.Fuzzy
		}
	}
	return 0
}

func stemEqual(a, b string) bool {
	if len(a) == len(b) {
		return false
	}
	long, short := a, b
	if len(long) < len(short) {
		long, short = short, long
	}
	if len(short) < 3 || !strings.HasPrefix(long, short) {
		return false
	}
	rest := long[len(short):]
	for _, s := range stemSuffixes {
		if rest == s {
			return true
		}
	}
	return false
}

func (d *Dictionary) fuzzyEligible(tok string) bool {
	n := len([]rune(tok))
	return n >= d.cfg.MinFuzzyRunes && n <= d.cfg.MaxFuzzyRunes
}

// slashHits matches slash-command literals. They are language-agnostic
// and always score at the exact tier.
func (d *Dictionary) slashHits(res textnorm.Result, ns registry.Namespace) []Hit {
	if ns != registry.NamespaceCommand {
		return nil
	}
	var hits []Hit
	for i, tok := range res.Tokens {
		if !tok.IsSlash() {
			continue
		}
		for _, id := range d.slash[tok.Text[1:]] {
			hits = append(hits, Hit{
				ID:        id,
				Namespace: ns,
				Start:     i,
				End:       i + 1,
				Quality:   d.cfg.Exact,
				Phrase:    tok.Text,
				Tier:      TierSlash,
			})
		}
	}
	return hits
}

// dedupe drops duplicate (id, span) hits that can arise when a candidate
// registered overlapping synonyms.
func dedupe(hits []Hit) []Hit {
	seen := make(map[string]bool, len(hits))
	out := hits[:0]
	for _, h := range hits {
		key := fmt.Sprintf("%s/%d-%d", h.ID, h.Start, h.End)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}
