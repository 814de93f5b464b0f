// ABOUTME: Tests for disambiguation prompt building and reply resolution
// ABOUTME: Covers choice capping, hints, grapheme truncation, numeric and fuzzy replies

package disambig

import (
	"strings"
	"testing"

	"github.com/mauromedda/intent-router-go/internal/classify"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

func mustRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.BuiltIn()
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func ambiguousDecision(ids ...string) classify.Decision {
	d := classify.Decision{Outcome: classify.OutcomeAmbiguous}
	for i, id := range ids {
		d.Ranked = append(d.Ranked, classify.Candidate{
			ID:         id,
			Namespace:  registry.NamespaceCommand,
			Confidence: 0.9 - float64(i)*0.01,
			Spans:      []classify.Span{{Start: 0, End: 1}},
		})
	}
	return d
}

func TestBuildPromptChoices(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, err := textnorm.Normalize("fix")
	if err != nil {
		t.Fatal(err)
	}

	p, ok := BuildPrompt(reg, res, ambiguousDecision("bug.fix", "lint.run", "code.review"), 4)
	if !ok {
		t.Fatal("BuildPrompt returned no prompt")
	}
	if len(p.Choices) != 3 {
		t.Fatalf("choices = %d; want 3", len(p.Choices))
	}
	first := p.Choices[0]
	if first.ID != "bug.fix" || first.Label != "Fix a bug" {
		t.Errorf("first choice = %+v", first)
	}
	if first.Hint == "" {
		t.Error("choice has no category hint")
	}
	if first.Excerpt != "fix" {
		t.Errorf("excerpt = %q; want %q", first.Excerpt, "fix")
	}
	// Hints must distinguish candidates from different categories.
	if p.Choices[0].Hint == p.Choices[2].Hint {
		t.Error("debug and review candidates share a hint")
	}
}

func TestBuildPromptCapsChoices(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, err := textnorm.Normalize("fix")
	if err != nil {
		t.Fatal(err)
	}

	d := ambiguousDecision("bug.fix", "lint.run", "code.review", "test.run", "git.status")
	p, ok := BuildPrompt(reg, res, d, 4)
	if !ok || len(p.Choices) != 4 {
		t.Fatalf("choices = %d; want capped at 4", len(p.Choices))
	}
}

func TestBuildPromptRejectsNonAmbiguous(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, err := textnorm.Normalize("fix")
	if err != nil {
		t.Fatal(err)
	}
	d := classify.Decision{Outcome: classify.OutcomeResolved}
	if _, ok := BuildPrompt(reg, res, d, 4); ok {
		t.Error("BuildPrompt accepted a resolved decision")
	}
}

func TestTruncateIsGraphemeSafe(t *testing.T) {
	t.Parallel()

	// Each flag is one grapheme built from two runes; a byte or rune
	// cut would split a flag in half.
	s := strings.Repeat("🇯🇵", 30)
	got := truncate(s, 5)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate(%q) = %q; want ellipsis", s[:12], got)
	}
	body := strings.TrimSuffix(got, "…")
	if body != strings.Repeat("🇯🇵", 5) {
		t.Errorf("truncated body = %q; want 5 whole flags", body)
	}

	if got := truncate("short", 24); got != "short" {
		t.Errorf("truncate(short) = %q; want unchanged", got)
	}
}

func TestResolveReplyNumeric(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, _ := textnorm.Normalize("fix")
	p, _ := BuildPrompt(reg, res, ambiguousDecision("bug.fix", "lint.run"), 4)

	for _, tc := range []struct {
		reply string
		want  string
		ok    bool
	}{
		{"1", "bug.fix", true},
		{"2", "lint.run", true},
		{" 2 ", "lint.run", true},
		{"3", "", false},
		{"0", "", false},
		{"", "", false},
	} {
		id, ok := ResolveReply(p, tc.reply)
		if id != tc.want || ok != tc.ok {
			t.Errorf("ResolveReply(%q) = %q, %v; want %q, %v", tc.reply, id, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveReplyFuzzyLabel(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, _ := textnorm.Normalize("fix")
	p, _ := BuildPrompt(reg, res, ambiguousDecision("bug.fix", "lint.run"), 4)

	if id, ok := ResolveReply(p, "linter"); !ok || id != "lint.run" {
		t.Errorf("ResolveReply(linter) = %q, %v; want lint.run", id, ok)
	}
	if id, ok := ResolveReply(p, "the bug one"); ok && id != "bug.fix" {
		t.Errorf("ResolveReply(the bug one) = %q; want bug.fix or no match", id)
	}
}

func TestResolveReplyExactID(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, _ := textnorm.Normalize("fix")
	p, _ := BuildPrompt(reg, res, ambiguousDecision("bug.fix", "lint.run"), 4)

	if id, ok := ResolveReply(p, "bug.fix"); !ok || id != "bug.fix" {
		t.Errorf("ResolveReply(bug.fix) = %q, %v; want exact id match", id, ok)
	}
}

func TestResolveReplyUnmatched(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t)
	res, _ := textnorm.Normalize("fix")
	p, _ := BuildPrompt(reg, res, ambiguousDecision("bug.fix", "lint.run"), 4)

	if id, ok := ResolveReply(p, "zzzz qqqq"); ok {
		t.Errorf("ResolveReply(zzzz qqqq) = %q; want no match", id)
	}
}
