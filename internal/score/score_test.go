// ABOUTME: Tests for the four signal scorers: keyword, context, situation, usage
// ABOUTME: Each scorer is a pure function; tables cover informative flags and score bounds

package score

import (
	"testing"

	"github.com/mauromedda/intent-router-go/internal/dictionary"
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.BuiltIn()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestKeywordNoHits(t *testing.T) {
	t.Parallel()

	if _, informative := Keyword(nil, 0.9); informative {
		t.Error("informative = true for empty hits; want false")
	}
}

func TestKeywordBestQualityWins(t *testing.T) {
	t.Parallel()

	hits := []dictionary.Hit{
		{ID: "bug.fix", Start: 0, End: 1, Quality: 0.4},
		{ID: "bug.fix", Start: 2, End: 5, Quality: 1.0},
	}
	scores, informative := Keyword(hits, 0.9)
	if !informative {
		t.Fatal("informative = false; want true")
	}
	if scores["bug.fix"] != 1.0 {
		t.Errorf("score = %.2f; want 1.0 (exclusive best hit, no penalty)", scores["bug.fix"])
	}
}

func TestKeywordSharedSpanPenalty(t *testing.T) {
	t.Parallel()

	hits := []dictionary.Hit{
		{ID: "bug.fix", Start: 0, End: 1, Quality: 1.0},
		{ID: "lint.run", Start: 0, End: 1, Quality: 1.0},
		{ID: "code.review", Start: 0, End: 1, Quality: 1.0},
	}
	scores, _ := Keyword(hits, 0.9)
	for id, s := range scores {
		if s != 0.9 {
			t.Errorf("score[%s] = %.2f; want 0.9 after tie penalty", id, s)
		}
	}
}

func TestKeywordExclusiveHitEscapesPenalty(t *testing.T) {
	t.Parallel()

	// bug.fix ties on span [0,1) but also owns an exclusive exact span.
	hits := []dictionary.Hit{
		{ID: "bug.fix", Start: 0, End: 1, Quality: 1.0},
		{ID: "lint.run", Start: 0, End: 1, Quality: 1.0},
		{ID: "bug.fix", Start: 3, End: 5, Quality: 1.0},
	}
	scores, _ := Keyword(hits, 0.9)
	if scores["bug.fix"] != 1.0 {
		t.Errorf("score[bug.fix] = %.2f; want 1.0", scores["bug.fix"])
	}
	if scores["lint.run"] != 0.9 {
		t.Errorf("score[lint.run] = %.2f; want 0.9", scores["lint.run"])
	}
}

func TestContextNoHistory(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	if _, informative := Context(reg, registry.NamespaceCommand, History{}, []string{"bug.fix"}); informative {
		t.Error("informative = true without history; want false")
	}
}

func TestContextCommandAffinity(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	hist := History{Commands: []string{"code.generate"}}
	scores, informative := Context(reg, registry.NamespaceCommand, hist, []string{"test.run", "search.code"})
	if !informative {
		t.Fatal("informative = false; want true")
	}
	// Verification follows construction more naturally than exploration.
	if scores["test.run"] <= scores["search.code"] {
		t.Errorf("test.run %.2f <= search.code %.2f; want verify boosted after build", scores["test.run"], scores["search.code"])
	}
}

func TestContextModeAffinity(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	hist := History{Modes: []string{"coding"}}
	scores, informative := Context(reg, registry.NamespaceMode, hist, []string{"debugging", "brainstorming"})
	if !informative {
		t.Fatal("informative = false; want true")
	}
	if scores["debugging"] <= scores["brainstorming"] {
		t.Errorf("debugging %.2f <= brainstorming %.2f; want analytical boosted after constructive", scores["debugging"], scores["brainstorming"])
	}
}

func TestContextUnknownPreviousID(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	hist := History{Commands: []string{"not.registered"}}
	if _, informative := Context(reg, registry.NamespaceCommand, hist, []string{"bug.fix"}); informative {
		t.Error("informative = true for unknown previous id; want false")
	}
}

func TestSituationFlags(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rules := DefaultRules()

	flags := map[string]string{"last_command_failed": "true"}
	scores, informative := Situation(reg, registry.NamespaceCommand, flags, rules, []string{"bug.fix", "git.status"})
	if !informative {
		t.Fatal("informative = false; want true")
	}
	if scores["bug.fix"] != 1.0 {
		t.Errorf("score[bug.fix] = %.2f; want 1.0", scores["bug.fix"])
	}
	if scores["git.status"] != 0.5 {
		t.Errorf("score[git.status] = %.2f; want neutral 0.5", scores["git.status"])
	}
}

func TestSituationIgnoresFalsyAndUnknownFlags(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rules := DefaultRules()

	flags := map[string]string{"last_command_failed": "false", "made_up_flag": "true"}
	if _, informative := Situation(reg, registry.NamespaceCommand, flags, rules, []string{"bug.fix"}); informative {
		t.Error("informative = true; want false when no active flag has a rule")
	}
}

func TestSituationAveragesMultipleFlags(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rules := DefaultRules()

	flags := map[string]string{"last_command_failed": "1", "tests_failing": "yes"}
	scores, informative := Situation(reg, registry.NamespaceCommand, flags, rules, []string{"bug.fix"})
	if !informative {
		t.Fatal("informative = false; want true")
	}
	// (1.0 + 0.9) / 2
	if scores["bug.fix"] < 0.94 || scores["bug.fix"] > 0.96 {
		t.Errorf("score[bug.fix] = %.3f; want 0.95", scores["bug.fix"])
	}
}

func TestUsageNewUserUninformative(t *testing.T) {
	t.Parallel()

	if _, informative := Usage(profile.New("u1"), registry.NamespaceCommand, []string{"bug.fix"}, 0.5, 2.0); informative {
		t.Error("informative = true for untouched profile; want false")
	}
	if _, informative := Usage(nil, registry.NamespaceCommand, []string{"bug.fix"}, 0.5, 2.0); informative {
		t.Error("informative = true for nil profile; want false")
	}
}

func TestUsageMultiplierMapping(t *testing.T) {
	t.Parallel()

	p := profile.New("u1")
	p.Weights[profile.Key(registry.NamespaceCommand, "bug.fix")] = 2.0
	p.Weights[profile.Key(registry.NamespaceCommand, "lint.run")] = 0.5

	scores, informative := Usage(p, registry.NamespaceCommand, []string{"bug.fix", "lint.run"}, 0.5, 2.0)
	if !informative {
		t.Fatal("informative = false; want true")
	}
	if scores["bug.fix"] != 1.0 {
		t.Errorf("score[bug.fix] = %.2f; want 1.0 at max multiplier", scores["bug.fix"])
	}
	if scores["lint.run"] != 0.0 {
		t.Errorf("score[lint.run] = %.2f; want 0.0 at min multiplier", scores["lint.run"])
	}
}

func TestUsageDominanceDamping(t *testing.T) {
	t.Parallel()

	p := profile.New("u1")
	key := profile.Key(registry.NamespaceCommand, "bug.fix")
	p.Weights[key] = 2.0
	p.Usage[key] = 100 // the only command ever used

	scores, _ := Usage(p, registry.NamespaceCommand, []string{"bug.fix"}, 0.5, 2.0)
	if scores["bug.fix"] >= 1.0 {
		t.Errorf("score = %.2f; want damped below 1.0 for a dominant candidate", scores["bug.fix"])
	}
	if scores["bug.fix"] < 0.6 {
		t.Errorf("score = %.2f; damping too aggressive", scores["bug.fix"])
	}
}
