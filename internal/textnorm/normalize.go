// ABOUTME: Language-aware lexical normalizer: NFKC + width folding, casing, diacritic strip
// ABOUTME: Whitespace tokenization for Latin/Hangul, script-run segmentation for CJK

package textnorm

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrEmptyInput reports input that is empty or whitespace-only. It
// short-circuits the pipeline before any candidate is evaluated.
var ErrEmptyInput = errors.New("empty input")

// Script is the coarse script class of a token or input.
type Script int

const (
	ScriptUnknown Script = iota
	ScriptLatin
	ScriptCJK    // Han, Hiragana, Katakana
	ScriptHangul // Korean
)

// String returns the script class name.
func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptCJK:
		return "cjk"
	case ScriptHangul:
		return "hangul"
	default:
		return "unknown"
	}
}

// Token is one normalized unit of the input.
type Token struct {
	Text   string // normalized form used for dictionary matching (diacritics stripped)
	Raw    string // normalized form with diacritics intact, for language markers
	Start  int    // rune offset in the normalized input, inclusive
	End    int    // rune offset, exclusive
	Script Script
}

// Result is the normalizer output consumed by the rest of the pipeline.
type Result struct {
	Text   string // the full normalized input
	Tokens []Token
	Script Script // dominant script class over letter runes
}

// IsSlash reports whether the token is a slash-command literal like "/lint".
func (t Token) IsSlash() bool {
	return len(t.Text) > 1 && t.Text[0] == '/'
}

// stripMarks removes combining marks after canonical decomposition, turning
// "señal" into "senal". Applied to Latin tokens only; kana voicing marks
// must survive.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// runeClass is the fine-grained class used for segmentation. CJK scripts
// split at class changes because they carry no whitespace.
type runeClass int

const (
	classOther runeClass = iota
	classLatin           // Latin letters, digits, and kept command symbols
	classHan
	classHiragana
	classKatakana
	classHangul
)

func classify(r rune) runeClass {
	switch {
	case unicode.Is(unicode.Hiragana, r):
		return classHiragana
	case unicode.Is(unicode.Katakana, r) || r == 'ー': // long-vowel mark binds to katakana
		return classKatakana
	case unicode.Is(unicode.Han, r):
		return classHan
	case unicode.Is(unicode.Hangul, r):
		return classHangul
	case unicode.IsLetter(r) || unicode.IsDigit(r) || keptSymbol(r):
		return classLatin
	default:
		return classOther
	}
}

// keptSymbol reports punctuation that stays in tokens because it is
// meaningful to command syntax: slash commands, flag dashes, quoting.
func keptSymbol(r rune) bool {
	return r == '/' || r == '-' || r == '\'' || r == '"'
}

func (c runeClass) script() Script {
	switch c {
	case classLatin:
		return ScriptLatin
	case classHan, classHiragana, classKatakana:
		return ScriptCJK
	case classHangul:
		return ScriptHangul
	default:
		return ScriptUnknown
	}
}

// Normalize converts raw UTF-8 text into the normalized token sequence.
// It is a pure function. Returns ErrEmptyInput for empty or
// whitespace-only input.
func Normalize(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyInput
	}

	// NFKC folds compatibility forms (fullwidth Latin to ASCII); the
	// width fold maps halfwidth katakana back to their canonical forms.
	folded := width.Fold.String(norm.NFKC.String(raw))
	text := strings.ToLower(folded)

	res := Result{Text: text}
	var (
		cur      strings.Builder
		curClass runeClass
		curStart int
		counts   [4]int // letter runes per Script, indexed by Script-1... see tally
	)

	flush := func(end int) {
		if cur.Len() == 0 {
			return
		}
		tok := Token{
			Raw:    cur.String(),
			Start:  curStart,
			End:    end,
			Script: curClass.script(),
		}
		tok.Text = tok.Raw
		if tok.Script == ScriptLatin {
			if stripped, _, err := transform.String(stripMarks, tok.Raw); err == nil {
				tok.Text = stripped
			}
		}
		res.Tokens = append(res.Tokens, tok)
		cur.Reset()
	}

	pos := 0
	for _, r := range text {
		c := classify(r)
		switch {
		case c == classOther:
			flush(pos)
		case cur.Len() == 0:
			curClass = c
			curStart = pos
			cur.WriteRune(r)
		case c == curClass:
			cur.WriteRune(r)
		default:
			flush(pos)
			curClass = c
			curStart = pos
			cur.WriteRune(r)
		}
		if unicode.IsLetter(r) {
			s := c.script()
			if s != ScriptUnknown {
				counts[s]++
			}
		}
		pos++
	}
	flush(pos)

	if len(res.Tokens) == 0 {
		return Result{}, ErrEmptyInput
	}
	res.Script = dominant(counts)
	return res, nil
}

func dominant(counts [4]int) Script {
	best, total := ScriptUnknown, 0
	for s := ScriptLatin; s <= ScriptHangul; s++ {
		total += counts[s]
		if counts[s] > counts[best] {
			best = s
		}
	}
	if total == 0 {
		return ScriptUnknown
	}
	return best
}

// ScriptCounts tallies letter runes per script class over a token slice.
// The language detector builds its histogram from this.
func ScriptCounts(tokens []Token) map[Script]int {
	counts := make(map[Script]int)
	for _, t := range tokens {
		for _, r := range t.Raw {
			if !unicode.IsLetter(r) {
				continue
			}
			if s := classify(r).script(); s != ScriptUnknown {
				counts[s]++
			}
		}
	}
	return counts
}
