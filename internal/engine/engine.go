// ABOUTME: Engine facade: normalize, detect, look up, score, decide, extract, learn
// ABOUTME: The classification path is synchronous and I/O free; only learning writes suspend

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mauromedda/intent-router-go/internal/classify"
	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/dictionary"
	"github.com/mauromedda/intent-router-go/internal/disambig"
	"github.com/mauromedda/intent-router-go/internal/eventbus"
	"github.com/mauromedda/intent-router-go/internal/extract"
	"github.com/mauromedda/intent-router-go/internal/lang"
	"github.com/mauromedda/intent-router-go/internal/learning"
	"github.com/mauromedda/intent-router-go/internal/log"
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/score"
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

// Status is the overall result variant of one classification.
type Status string

const (
	StatusResolved   Status = "resolved"
	StatusAmbiguous  Status = "ambiguous"
	StatusUnresolved Status = "unresolved"
	StatusEmptyInput Status = "empty_input"
)

// Request is one classification call.
type Request struct {
	RequestID string // assigned when empty
	UserID    string
	Text      string
	History   score.History
	Flags     map[string]string
	// ExcludeCommands removes command candidates from consideration;
	// set when a disambiguation reply re-enters the pipeline.
	ExcludeCommands []string
}

// Resolved carries the accepted command and its extracted parameters.
type Resolved struct {
	CommandID  string         `json:"command_id"`
	Label      string         `json:"label"`
	Params     extract.Params `json:"params,omitempty"`
	Confidence float64        `json:"confidence"`
}

// ModeResult carries the chosen cognitive-mode label, when one resolved.
type ModeResult struct {
	ModeID     string  `json:"mode_id"`
	Label      string  `json:"label"`
	Symbol     string  `json:"symbol"`
	Confidence float64 `json:"confidence"`
	// Changed is false when the governor held the previous mode.
	Changed bool `json:"changed"`
}

// Result is the classification outcome returned to the caller.
type Result struct {
	RequestID string   `json:"request_id"`
	Status    Status   `json:"status"`
	Language  lang.Tag `json:"language"`

	Command *Resolved        `json:"command,omitempty"`
	Mode    *ModeResult      `json:"mode,omitempty"`
	Prompt  *disambig.Prompt `json:"prompt,omitempty"`

	// Ranked candidates per namespace, for introspection and UI.
	CommandCandidates []classify.Candidate `json:"command_candidates,omitempty"`
	ModeCandidates    []classify.Candidate `json:"mode_candidates,omitempty"`

	// ParamError is set when the command resolved but a required
	// parameter is missing or malformed; the caller prompts or aborts.
	ParamError error `json:"-"`
}

// Engine wires the pipeline together. Safe for concurrent use.
type Engine struct {
	cfg   config.Config
	reg   *registry.Registry
	dict  *dictionary.Dictionary
	core  *classify.Core
	learn *learning.Store
	gov   *governor

	classified *eventbus.Bus[eventbus.Classified]
	modeEvents *eventbus.Bus[eventbus.ModeChanged]
}

// New builds an engine over the given registry. store may be nil;
// learning then lives only in memory.
func New(cfg config.Config, reg *registry.Registry, store profile.Store) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dict, err := dictionary.Compile(reg, cfg.Match)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		reg:        reg,
		dict:       dict,
		core:       classify.NewCore(reg, cfg, nil),
		learn:      learning.NewStore(cfg.Learning, reg, store),
		gov:        newGovernor(reg, cfg.Governor.DefaultDwell),
		classified: eventbus.New[eventbus.Classified](),
		modeEvents: eventbus.New[eventbus.ModeChanged](),
	}, nil
}

// Classify is the sole synchronous entry point. It never blocks on I/O
// beyond the initial profile snapshot for a first-seen user.
func (e *Engine) Classify(ctx context.Context, req Request) Result {
	out := Result{RequestID: req.RequestID}
	if out.RequestID == "" {
		out.RequestID = uuid.NewString()
	}

	res, err := textnorm.Normalize(req.Text)
	if errors.Is(err, textnorm.ErrEmptyInput) {
		out.Status = StatusEmptyInput
		return out
	}

	prof := e.learn.Snapshot(ctx, req.UserID)
	tag := lang.Detect(res, lang.Tag(prof.LastLanguage))
	out.Language = tag
	unknown := tag == lang.Unknown

	cmdHits := e.dict.Lookup(res, tag, registry.NamespaceCommand)
	modeHits := e.dict.Lookup(res, tag, registry.NamespaceMode)

	cmdDecision := e.core.Classify(classify.Input{
		Namespace:       registry.NamespaceCommand,
		Hits:            cmdHits,
		History:         req.History,
		Flags:           req.Flags,
		Profile:         prof,
		UnknownLanguage: unknown,
		Exclude:         req.ExcludeCommands,
	})
	modeDecision := e.core.Classify(classify.Input{
		Namespace:       registry.NamespaceMode,
		Hits:            modeHits,
		History:         req.History,
		Flags:           req.Flags,
		Profile:         prof,
		UnknownLanguage: unknown,
	})
	out.CommandCandidates = cmdDecision.Ranked
	out.ModeCandidates = modeDecision.Ranked

	switch cmdDecision.Outcome {
	case classify.OutcomeResolved:
		out.Status = StatusResolved
		best, _ := cmdDecision.Best()
		out.Command = e.resolve(res, best, &out)
	case classify.OutcomeAmbiguous:
		out.Status = StatusAmbiguous
		if p, ok := disambig.BuildPrompt(e.reg, res, cmdDecision, e.cfg.Decision.MaxChoices); ok {
			out.Prompt = &p
		}
	default:
		out.Status = StatusUnresolved
	}

	out.Mode = e.settleMode(req.UserID, modeDecision)

	if !unknown && out.Status == StatusResolved {
		e.learn.ObserveLanguage(ctx, req.UserID, string(tag))
	}
	e.publish(req.UserID, out)
	return out
}

func (e *Engine) resolve(res textnorm.Result, best classify.Candidate, out *Result) *Resolved {
	r := &Resolved{
		CommandID:  best.ID,
		Label:      e.reg.Label(registry.NamespaceCommand, best.ID),
		Confidence: best.Confidence,
	}
	def, ok := e.reg.Command(best.ID)
	if !ok {
		return r
	}
	span, _ := best.PrimarySpan()
	params, err := extract.Parameters(def, res, span)
	if err != nil {
		out.ParamError = err
		return r
	}
	r.Params = params
	return r
}

// settleMode adopts a mode label only when the mode namespace resolved
// outright; weak or tied mode evidence keeps the current mode.
func (e *Engine) settleMode(userID string, d classify.Decision) *ModeResult {
	best, ok := d.Best()
	if !ok {
		if current := e.gov.current(userID); current != "" {
			return e.modeResult(current, 0, false)
		}
		return nil
	}

	from, changed := e.gov.admit(userID, best.ID)
	if changed {
		e.modeEvents.Publish(eventbus.ModeChanged{
			UserID: userID,
			From:   from,
			To:     best.ID,
			At:     time.Now(),
		})
		return e.modeResult(best.ID, best.Confidence, true)
	}
	// Governor held the previous mode.
	return e.modeResult(e.gov.current(userID), best.Confidence, false)
}

func (e *Engine) modeResult(id string, confidence float64, changed bool) *ModeResult {
	m, ok := e.reg.Mode(id)
	if !ok {
		return nil
	}
	return &ModeResult{
		ModeID:     id,
		Label:      m.Label,
		Symbol:     m.Symbol,
		Confidence: confidence,
		Changed:    changed,
	}
}

func (e *Engine) publish(userID string, out Result) {
	ev := eventbus.Classified{
		RequestID: out.RequestID,
		UserID:    userID,
		Language:  string(out.Language),
		Outcome:   string(out.Status),
		At:        time.Now(),
	}
	if out.Command != nil {
		ev.CommandID = out.Command.CommandID
	}
	if out.Mode != nil {
		ev.ModeID = out.Mode.ModeID
	}
	e.classified.Publish(ev)
}

// RecordOutcome forwards user feedback to the learning store. requestID
// is the id of the classification being answered; replays of the same
// feedback for it do not compound. The write is applied in memory
// immediately and persisted asynchronously.
func (e *Engine) RecordOutcome(ctx context.Context, userID, requestID string, ns registry.Namespace, candidateID string, outcome learning.Outcome, correctedTo string) error {
	err := e.learn.RecordOutcome(ctx, userID, requestID, ns, candidateID, outcome, correctedTo)
	if err != nil {
		log.Warn("record outcome failed user=%s candidate=%s err=%v", userID, candidateID, err)
	}
	return err
}

// ResolveReply maps a disambiguation reply to a choice id. ok is false
// when the reply picked nothing; the caller then re-runs Classify on the
// reply text with the previous top candidate excluded.
func (e *Engine) ResolveReply(p disambig.Prompt, reply string) (string, bool) {
	return disambig.ResolveReply(p, reply)
}

// Commands exposes the command registry for help and UI building.
func (e *Engine) Commands() []registry.IntentDefinition { return e.reg.Commands() }

// Modes exposes the mode registry.
func (e *Engine) Modes() []registry.ModeDefinition { return e.reg.Modes() }

// Profile returns a snapshot of the user's learning state.
func (e *Engine) Profile(ctx context.Context, userID string) *profile.Profile {
	return e.learn.Snapshot(ctx, userID)
}

// SubscribeClassified registers an observer for classification events.
func (e *Engine) SubscribeClassified(h eventbus.Handler[eventbus.Classified]) func() {
	return e.classified.Subscribe(h)
}

// SubscribeModeChanged registers an observer for admitted transitions.
func (e *Engine) SubscribeModeChanged(h eventbus.Handler[eventbus.ModeChanged]) func() {
	return e.modeEvents.Subscribe(h)
}

// Close drains pending learning writes. The profile store itself is
// owned and closed by the caller.
func (e *Engine) Close() {
	e.learn.Close()
}
