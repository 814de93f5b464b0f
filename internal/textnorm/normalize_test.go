// ABOUTME: Tests for the lexical normalizer across Latin, CJK, and Hangul inputs
// ABOUTME: Covers casing, width folding, diacritic stripping, and script-run segmentation

package textnorm

import (
	"errors"
	"testing"
)

func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\t\n", "。、！"} {
		if _, err := Normalize(input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Normalize(%q) error = %v; want ErrEmptyInput", input, err)
		}
	}
}

func TestNormalizeLatin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  string
		want   []string
		script Script
	}{
		{"lowercase and punctuation strip", "Fix the BUG!", []string{"fix", "the", "bug"}, ScriptLatin},
		{"diacritics stripped", "Arréglalo, según el Código", []string{"arreglalo", "segun", "el", "codigo"}, ScriptLatin},
		{"slash command survives", "/lint src", []string{"/lint", "src"}, ScriptLatin},
		{"dash and digits stay attached", "focus 25m --deep", []string{"focus", "25m", "--deep"}, ScriptLatin},
		{"fullwidth latin folds to ascii", "ｆｉｘ　ｂｕｇ", []string{"fix", "bug"}, ScriptLatin},
		{"whitespace collapses", "  fix \t the   bug ", []string{"fix", "the", "bug"}, ScriptLatin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			texts := tokenTexts(got.Tokens)
			if len(texts) != len(tc.want) {
				t.Fatalf("tokens = %q; want %q", texts, tc.want)
			}
			for i := range texts {
				if texts[i] != tc.want[i] {
					t.Errorf("token[%d] = %q; want %q", i, texts[i], tc.want[i])
				}
			}
			if got.Script != tc.script {
				t.Errorf("Script = %v; want %v", got.Script, tc.script)
			}
		})
	}
}

func TestNormalizeJapaneseScriptRuns(t *testing.T) {
	t.Parallel()

	got, err := Normalize("このバグを直して")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"この", "バグ", "を", "直", "して"}
	texts := tokenTexts(got.Tokens)
	if len(texts) != len(want) {
		t.Fatalf("tokens = %q; want %q", texts, want)
	}
	for i := range texts {
		if texts[i] != want[i] {
			t.Errorf("token[%d] = %q; want %q", i, texts[i], want[i])
		}
	}
	if got.Script != ScriptCJK {
		t.Errorf("Script = %v; want ScriptCJK", got.Script)
	}
}

func TestNormalizeHalfwidthKatakana(t *testing.T) {
	t.Parallel()

	got, err := Normalize("ﾊﾞｸﾞ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tokens) != 1 || got.Tokens[0].Text != "バグ" {
		t.Errorf("tokens = %q; want [バグ]", tokenTexts(got.Tokens))
	}
}

func TestNormalizeKorean(t *testing.T) {
	t.Parallel()

	got, err := Normalize("버그 수정해줘")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"버그", "수정해줘"}
	texts := tokenTexts(got.Tokens)
	if len(texts) != len(want) {
		t.Fatalf("tokens = %q; want %q", texts, want)
	}
	if got.Script != ScriptHangul {
		t.Errorf("Script = %v; want ScriptHangul", got.Script)
	}
}

func TestNormalizeMixedScriptDominance(t *testing.T) {
	t.Parallel()

	// Mostly Japanese with one Latin word: CJK must dominate.
	got, err := Normalize("テストを実行して main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Script != ScriptCJK {
		t.Errorf("Script = %v; want ScriptCJK", got.Script)
	}
}

func TestTokenSpans(t *testing.T) {
	t.Parallel()

	got, err := Normalize("fix bug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tokens[0].Start != 0 || got.Tokens[0].End != 3 {
		t.Errorf("span[0] = [%d, %d); want [0, 3)", got.Tokens[0].Start, got.Tokens[0].End)
	}
	if got.Tokens[1].Start != 4 || got.Tokens[1].End != 7 {
		t.Errorf("span[1] = [%d, %d); want [4, 7)", got.Tokens[1].Start, got.Tokens[1].End)
	}
}

func TestTokenIsSlash(t *testing.T) {
	t.Parallel()

	if !(Token{Text: "/lint"}).IsSlash() {
		t.Error("IsSlash(/lint) = false; want true")
	}
	if (Token{Text: "lint"}).IsSlash() {
		t.Error("IsSlash(lint) = true; want false")
	}
	if (Token{Text: "/"}).IsSlash() {
		t.Error("IsSlash(/) = true; want false")
	}
}
