// ABOUTME: Parameter extractor: deterministic per-kind rules over the normalized input
// ABOUTME: Runs after a command resolves; missing required params are typed errors, not defaults

package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mauromedda/intent-router-go/internal/classify"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

// Value is one extracted parameter. Text always holds the surface form;
// Duration is set only for duration-kind parameters.
type Value struct {
	Kind     registry.ParamKind `json:"kind"`
	Text     string             `json:"text"`
	Duration time.Duration      `json:"duration,omitempty"`
}

// Params maps parameter name to its extracted value. Optional parameters
// that produced nothing are absent.
type Params map[string]Value

// MissingParameterError reports a required parameter the input did not
// supply. The caller decides whether to prompt or abort.
type MissingParameterError struct {
	Command string
	Name    string
	Kind    registry.ParamKind
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("command %s: missing required %s parameter %q", e.Command, e.Kind, e.Name)
}

// ParameterTypeMismatchError reports input that looked like a parameter
// but could not be parsed as the declared kind.
type ParameterTypeMismatchError struct {
	Command string
	Name    string
	Kind    registry.ParamKind
	Got     string
}

func (e *ParameterTypeMismatchError) Error() string {
	return fmt.Sprintf("command %s: parameter %q: %q is not a valid %s", e.Command, e.Name, e.Got, e.Kind)
}

// Parameters fills the command's schema from the normalized input, with
// the matched span removed first. Deterministic: same input, same span,
// same schema always yields the same result.
func Parameters(def registry.IntentDefinition, res textnorm.Result, span classify.Span) (Params, error) {
	rem := remainder(res, span)
	params := make(Params, len(def.Params))

	for _, spec := range def.Params {
		v, ok, err := extractOne(spec, rem)
		if err != nil {
			if mm, isMM := err.(*ParameterTypeMismatchError); isMM {
				mm.Command = def.ID
			}
			return nil, err
		}
		if !ok {
			if spec.Required {
				return nil, &MissingParameterError{Command: def.ID, Name: spec.Name, Kind: spec.Kind}
			}
			continue
		}
		params[spec.Name] = v
	}
	return params, nil
}

// remainder is the input with the matched span's tokens removed, both as
// the surviving token slice and as a rejoined string for rules that need
// raw character shapes.
type remainderInput struct {
	tokens []textnorm.Token
	text   string
}

func remainder(res textnorm.Result, span classify.Span) remainderInput {
	runes := []rune(res.Text)
	var (
		tokens []textnorm.Token
		b      strings.Builder
		prev   textnorm.Token
		have   bool
	)
	for i, t := range res.Tokens {
		if i >= span.Start && i < span.End {
			continue
		}
		if have {
			// The tokenizer splits on dots; rejoin dot-adjacent tokens
			// so filenames like "main.go" survive into path extraction.
			if t.Start == prev.End+1 && prev.End < len(runes) && runes[prev.End] == '.' {
				b.WriteByte('.')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.Text)
		tokens = append(tokens, t)
		prev, have = t, true
	}
	return remainderInput{tokens: tokens, text: b.String()}
}

func extractOne(spec registry.ParamSpec, rem remainderInput) (Value, bool, error) {
	switch spec.Kind {
	case registry.ParamText:
		return extractText(rem)
	case registry.ParamEnum:
		return extractEnum(spec, rem)
	case registry.ParamDuration:
		return extractDuration(spec, rem)
	case registry.ParamPath:
		return extractPath(rem)
	default:
		return Value{}, false, fmt.Errorf("unknown parameter kind %q", spec.Kind)
	}
}

// extractText takes the whole remainder, trimmed. CJK tokens rejoin
// without spaces since the source script carries none.
func extractText(rem remainderInput) (Value, bool, error) {
	var b strings.Builder
	for i, t := range rem.tokens {
		if i > 0 && !(t.Script == textnorm.ScriptCJK && rem.tokens[i-1].Script == textnorm.ScriptCJK) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return Value{}, false, nil
	}
	return Value{Kind: registry.ParamText, Text: text}, true, nil
}

// enumEditMax tolerates a single typo when matching listed values.
const enumEditMax = 1

// extractEnum picks the remainder token closest to the span that equals
// a listed value, exactly first, then within one edit for longer tokens.
func extractEnum(spec registry.ParamSpec, rem remainderInput) (Value, bool, error) {
	for _, t := range rem.tokens {
		for _, v := range spec.Values {
			if t.Text == v {
				return Value{Kind: registry.ParamEnum, Text: v}, true, nil
			}
		}
	}
	for _, t := range rem.tokens {
		if len([]rune(t.Text)) < 4 {
			continue
		}
		for _, v := range spec.Values {
			if _, ok := textnorm.BoundedEditDistance(t.Text, v, enumEditMax); ok {
				return Value{Kind: registry.ParamEnum, Text: v}, true, nil
			}
		}
	}
	return Value{}, false, nil
}

// durationUnits maps unit tokens across the supported languages to a
// base duration.
var durationUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
	"hour": time.Hour, "hours": time.Hour,

	"segundo": time.Second, "segundos": time.Second,
	"minuto": time.Minute, "minutos": time.Minute,
	"hora": time.Hour, "horas": time.Hour,

	"seconde": time.Second, "secondes": time.Second,
	"heure": time.Hour, "heures": time.Hour,

	"秒": time.Second, "分": time.Minute, "時間": time.Hour,
	"초": time.Second, "분": time.Minute, "시간": time.Hour,
}

// cjkUnits in prefix-match order; the two-rune units first.
var cjkUnits = []string{"時間", "시간", "分", "秒", "분", "초"}

var quantityUnit = regexp.MustCompile(`^([0-9]+)([a-z]+)$`)

// extractDuration finds the first quantity+unit pair: either a single
// token like "25m" or a number token followed by a unit token, which is
// how CJK inputs arrive after segmentation ("25" "分").
func extractDuration(spec registry.ParamSpec, rem remainderInput) (Value, bool, error) {
	for i, t := range rem.tokens {
		if m := quantityUnit.FindStringSubmatch(t.Text); m != nil {
			unit, ok := durationUnits[m[2]]
			if !ok {
				return Value{}, false, &ParameterTypeMismatchError{Name: spec.Name, Kind: spec.Kind, Got: t.Text}
			}
			return durationValue(t.Text, m[1], unit, spec)
		}
		if isNumber(t.Text) && i+1 < len(rem.tokens) {
			next := rem.tokens[i+1]
			if unit, ok := durationUnits[next.Text]; ok {
				return durationValue(t.Text+" "+next.Text, t.Text, unit, spec)
			}
			// CJK units fuse into the following script run ("25分集中"
			// segments as "25" + "分集中"), so match on the prefix.
			if next.Script != textnorm.ScriptLatin {
				for _, u := range cjkUnits {
					if strings.HasPrefix(next.Text, u) {
						return durationValue(t.Text+u, t.Text, durationUnits[u], spec)
					}
				}
			}
		}
	}
	return Value{}, false, nil
}

func durationValue(surface, digits string, unit time.Duration, spec registry.ParamSpec) (Value, bool, error) {
	var n int64
	for _, r := range digits {
		n = n*10 + int64(r-'0')
		if n > 1<<20 {
			return Value{}, false, &ParameterTypeMismatchError{Name: spec.Name, Kind: spec.Kind, Got: surface}
		}
	}
	if n == 0 {
		return Value{}, false, &ParameterTypeMismatchError{Name: spec.Name, Kind: spec.Kind, Got: surface}
	}
	return Value{Kind: registry.ParamDuration, Text: surface, Duration: time.Duration(n) * unit}, true, nil
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// pathPattern matches either a slash-separated path or a bare filename
// with an extension. Applied to the rejoined remainder because the
// tokenizer splits on dots.
var pathPattern = regexp.MustCompile(`(?:~?/?(?:[\w.-]+/)+[\w.-]+|[\w-]+\.[a-z0-9]+)`)

func extractPath(rem remainderInput) (Value, bool, error) {
	if p := pathPattern.FindString(rem.text); p != "" && !isSlashLiteral(p) {
		return Value{Kind: registry.ParamPath, Text: p}, true, nil
	}
	for _, t := range rem.tokens {
		if strings.ContainsRune(t.Text, '/') && !t.IsSlash() {
			return Value{Kind: registry.ParamPath, Text: t.Text}, true, nil
		}
	}
	return Value{}, false, nil
}

func isSlashLiteral(s string) bool {
	return strings.HasPrefix(s, "/") && strings.Count(s, "/") == 1 && !strings.Contains(s, ".")
}
