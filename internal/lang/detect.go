// ABOUTME: Language detector: script histogram with coverage threshold plus Latin marker words
// ABOUTME: Ties inside the Latin script fall back to the user's most recent language

package lang

import (
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

// Tag identifies a supported language.
type Tag string

const (
	English  Tag = "en"
	Spanish  Tag = "es"
	French   Tag = "fr"
	Japanese Tag = "ja"
	Korean   Tag = "ko"
	Unknown  Tag = "unknown"
)

// Supported lists the languages with dictionary coverage, in a stable order.
var Supported = []Tag{English, Spanish, French, Japanese, Korean}

// coverageThreshold is the minimum share of letter runes a script class
// must hold before its language is declared.
const coverageThreshold = 0.6

// Latin-script languages share one script class; short marker-word lists
// separate them. The lists hold normalized forms, diacritics intact, as
// produced by the normalizer's Raw field.
var latinMarkers = map[Tag][]string{
	Spanish: {
		"el", "la", "los", "las", "un", "una", "este", "esta", "que",
		"por", "para", "con", "código", "error", "arregla", "arreglar",
		"corrige", "corregir", "genera", "busca", "explica", "prueba",
		"modo", "ayuda", "según", "cómo",
	},
	French: {
		"le", "la", "les", "un", "une", "ce", "cette", "que", "pour",
		"avec", "dans", "corrige", "corriger", "répare", "réparer",
		"génère", "cherche", "explique", "montre", "teste", "aide",
		"erreur", "bogue", "s'il", "à", "été",
	},
	English: {
		"the", "a", "an", "this", "that", "fix", "bug", "please", "run",
		"show", "find", "search", "explain", "commit", "test", "lint",
		"review", "generate", "write", "help", "mode",
	},
}

// Detect classifies the dominant language of the normalized input.
// previous is the language of the user's most recent successful
// classification and breaks ties among Latin-script languages; pass
// Unknown when there is no history.
func Detect(res textnorm.Result, previous Tag) Tag {
	counts := textnorm.ScriptCounts(res.Tokens)
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return Unknown
	}

	best, bestN := textnorm.ScriptUnknown, 0
	for s, n := range counts {
		if n > bestN {
			best, bestN = s, n
		}
	}
	if float64(bestN)/float64(total) < coverageThreshold {
		return Unknown
	}

	switch best {
	case textnorm.ScriptHangul:
		return Korean
	case textnorm.ScriptCJK:
		// Chinese is unsupported; Han-only input still routes to the
		// Japanese dictionary, whose kanji phrases cover it best.
		return Japanese
	case textnorm.ScriptLatin:
		return detectLatin(res.Tokens, previous)
	default:
		return Unknown
	}
}

var markerSets = func() map[Tag]map[string]bool {
	out := make(map[Tag]map[string]bool, len(latinMarkers))
	for tag, words := range latinMarkers {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[w] = true
		}
		out[tag] = set
	}
	return out
}()

// detectLatin separates English, Spanish, and French by marker-word hits.
func detectLatin(tokens []textnorm.Token, previous Tag) Tag {
	scores := make(map[Tag]int, 3)
	for _, tok := range tokens {
		if tok.Script != textnorm.ScriptLatin {
			continue
		}
		for tag, set := range markerSets {
			if set[tok.Raw] {
				scores[tag]++
			}
		}
	}

	best, bestN, tied := Unknown, 0, false
	for _, tag := range []Tag{English, Spanish, French} {
		switch {
		case scores[tag] > bestN:
			best, bestN, tied = tag, scores[tag], false
		case scores[tag] == bestN && bestN > 0:
			tied = true
		}
	}

	if bestN == 0 || tied {
		// No decisive markers: prefer the user's recent language when it
		// is Latin-script, else default to English.
		switch previous {
		case English, Spanish, French:
			return previous
		default:
			return English
		}
	}
	return best
}

// IsLatin reports whether the tag names a Latin-script language.
func IsLatin(tag Tag) bool {
	return tag == English || tag == Spanish || tag == French
}
