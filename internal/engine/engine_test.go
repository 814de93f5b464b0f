// ABOUTME: End-to-end tests for the engine facade across languages and outcomes
// ABOUTME: Exercises resolution, ambiguity, learning round-trips, and the governor

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/eventbus"
	"github.com/mauromedda/intent-router-go/internal/extract"
	"github.com/mauromedda/intent-router-go/internal/lang"
	"github.com/mauromedda/intent-router-go/internal/learning"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := registry.BuiltIn()
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(config.Default(), reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestClassifyJapaneseExactPhrase(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "このバグを直して"})

	if r.Status != StatusResolved {
		t.Fatalf("Status = %v; want resolved (candidates: %+v)", r.Status, r.CommandCandidates)
	}
	if r.Language != lang.Japanese {
		t.Errorf("Language = %v; want ja", r.Language)
	}
	if r.Command == nil || r.Command.CommandID != "bug.fix" {
		t.Fatalf("Command = %+v; want bug.fix", r.Command)
	}
	if r.Command.Confidence < 0.95 {
		t.Errorf("Confidence = %.2f; want >= 0.95", r.Command.Confidence)
	}
	if r.Mode == nil || r.Mode.ModeID != "debugging" {
		t.Errorf("Mode = %+v; want debugging", r.Mode)
	}
	if r.RequestID == "" {
		t.Error("no request id assigned")
	}
}

func TestClassifyBareFixIsAmbiguous(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "fix"})

	if r.Status != StatusAmbiguous {
		t.Fatalf("Status = %v; want ambiguous", r.Status)
	}
	if r.Prompt == nil || len(r.Prompt.Choices) < 2 {
		t.Fatalf("Prompt = %+v; want at least two choices", r.Prompt)
	}
	if len(r.Prompt.Choices) > config.Default().Decision.MaxChoices {
		t.Errorf("choices = %d; want capped", len(r.Prompt.Choices))
	}
	if r.Command != nil {
		t.Error("ambiguous result carries a resolved command")
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	for _, text := range []string{"", "   ", "。、！"} {
		r := e.Classify(context.Background(), Request{UserID: "u1", Text: text})
		if r.Status != StatusEmptyInput {
			t.Errorf("Classify(%q) status = %v; want empty_input", text, r.Status)
		}
	}
}

func TestClassifyUnknownLanguageIsCapped(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	// Mixed scripts below the coverage threshold.
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "fix バグ 고쳐 주세요"})

	if r.Language != lang.Unknown {
		t.Fatalf("Language = %v; want unknown", r.Language)
	}
	if r.Status == StatusResolved {
		t.Error("unknown-language request resolved above the ceiling")
	}
	for _, c := range r.CommandCandidates {
		if c.Confidence > config.Default().Decision.UnknownLanguageCeiling+1e-9 {
			t.Errorf("candidate %s confidence %.2f exceeds the ceiling", c.ID, c.Confidence)
		}
	}
}

func TestClassifySlashFastPath(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "/commit"})

	if r.Status != StatusResolved {
		t.Fatalf("Status = %v; want resolved", r.Status)
	}
	if r.Command.CommandID != "git.commit" {
		t.Errorf("Command = %s; want git.commit", r.Command.CommandID)
	}
}

func TestClassifyMissingRequiredParameter(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "start a focus session"})

	if r.Status != StatusResolved || r.Command == nil || r.Command.CommandID != "focus.start" {
		t.Fatalf("result = %+v; want resolved focus.start", r)
	}
	var missing *extract.MissingParameterError
	if !errors.As(r.ParamError, &missing) {
		t.Fatalf("ParamError = %v; want MissingParameterError", r.ParamError)
	}
	if missing.Name != "duration" {
		t.Errorf("missing param = %s; want duration", missing.Name)
	}
}

func TestClassifyExtractsDuration(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "start a focus session 25m"})

	if r.Status != StatusResolved || r.ParamError != nil {
		t.Fatalf("result = %+v, paramErr = %v; want clean resolution", r.Status, r.ParamError)
	}
	if got := r.Command.Params["duration"].Text; got != "25m" {
		t.Errorf("duration = %q; want 25m", got)
	}
}

func TestDisambiguationRoundTrip(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	r := e.Classify(ctx, Request{UserID: "u1", Text: "fix"})
	if r.Status != StatusAmbiguous {
		t.Fatalf("Status = %v; want ambiguous", r.Status)
	}

	id, ok := e.ResolveReply(*r.Prompt, "1")
	if !ok || id != r.Prompt.Choices[0].ID {
		t.Fatalf("ResolveReply = %q, %v", id, ok)
	}

	err := e.RecordOutcome(ctx, "u1", r.RequestID, registry.NamespaceCommand, id, learning.OutcomeAccepted, "")
	if err != nil {
		t.Fatal(err)
	}
	p := e.Profile(ctx, "u1")
	if got := p.Multiplier(registry.NamespaceCommand, id); got <= 1.0 {
		t.Errorf("multiplier after acceptance = %.3f; want > 1.0", got)
	}
}

func TestExclusionResolvesRunnerUp(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	first := e.Classify(ctx, Request{UserID: "u1", Text: "fix"})
	if first.Status != StatusAmbiguous {
		t.Fatalf("Status = %v; want ambiguous", first.Status)
	}

	var exclude []string
	for _, c := range first.CommandCandidates[:len(first.CommandCandidates)-1] {
		exclude = append(exclude, c.ID)
	}
	last := first.CommandCandidates[len(first.CommandCandidates)-1].ID

	second := e.Classify(ctx, Request{UserID: "u1", Text: "fix", ExcludeCommands: exclude})
	if second.Status != StatusResolved {
		t.Fatalf("Status = %v; want resolved after exclusion", second.Status)
	}
	if second.Command.CommandID != last {
		t.Errorf("Command = %s; want %s", second.Command.CommandID, last)
	}
}

func TestGovernorHoldsModeAcrossRequests(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	r1 := e.Classify(ctx, Request{UserID: "u1", Text: "fix"})
	if r1.Mode == nil || r1.Mode.ModeID != "debugging" || !r1.Mode.Changed {
		t.Fatalf("first mode = %+v; want fresh debugging", r1.Mode)
	}

	// Debugging declares a 5s dwell; an immediate shift is suppressed.
	r2 := e.Classify(ctx, Request{UserID: "u1", Text: "implement"})
	if r2.Mode == nil || r2.Mode.ModeID != "debugging" || r2.Mode.Changed {
		t.Errorf("second mode = %+v; want debugging held", r2.Mode)
	}
}

func TestClassifiedEventPublished(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	var events []eventbus.Classified
	unsub := e.SubscribeClassified(func(ev eventbus.Classified) {
		events = append(events, ev)
	})
	defer unsub()

	var transitions []eventbus.ModeChanged
	defer e.SubscribeModeChanged(func(ev eventbus.ModeChanged) {
		transitions = append(transitions, ev)
	})()

	r := e.Classify(context.Background(), Request{UserID: "u1", Text: "fix"})

	if len(events) != 1 {
		t.Fatalf("classified events = %d; want 1", len(events))
	}
	ev := events[0]
	if ev.RequestID != r.RequestID || ev.Outcome != string(StatusAmbiguous) || ev.UserID != "u1" {
		t.Errorf("event = %+v; want match with result %v", ev, r.Status)
	}
	if len(transitions) != 1 || transitions[0].To != "debugging" {
		t.Errorf("mode transitions = %+v; want one into debugging", transitions)
	}
}
