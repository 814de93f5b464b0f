// ABOUTME: Ambiguity resolver: builds a disambiguation payload and resolves the user's reply
// ABOUTME: Never guesses; a reply either picks a listed choice or re-enters the pipeline

package disambig

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/sahilm/fuzzy"

	"github.com/mauromedda/intent-router-go/internal/classify"
	"github.com/mauromedda/intent-router-go/internal/registry"
	"github.com/mauromedda/intent-router-go/internal/textnorm"
)

// Choice is one selectable candidate in a disambiguation prompt.
type Choice struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Hint       string  `json:"hint"`
	Excerpt    string  `json:"excerpt,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Prompt is the ordered payload the caller presents to the user.
type Prompt struct {
	Namespace registry.Namespace `json:"namespace"`
	Choices   []Choice           `json:"choices"`
}

// excerptGraphemes bounds the matched-text excerpt shown per choice.
// Truncation is grapheme-cluster safe so emoji and combined characters
// never split.
const excerptGraphemes = 24

// commandHints gives each command category a short distinguishing line.
var commandHints = map[string]string{
	registry.CategoryDebug:    "fix a problem in the code",
	registry.CategoryBuild:    "create something new",
	registry.CategoryMaintain: "clean up or check existing code",
	registry.CategoryReview:   "look over code for issues",
	registry.CategoryExplain:  "get an explanation or docs",
	registry.CategoryVerify:   "run checks against the code",
	registry.CategoryVCS:      "work with version control",
	registry.CategoryExplore:  "search or navigate the codebase",
	registry.CategoryFlow:     "adjust your working session",
	registry.CategoryMeta:     "get help with the tool itself",
}

// modeHints does the same for mode categories.
var modeHints = map[string]string{
	registry.ModeAnalytical:    "analytical, problem-solving work",
	registry.ModeCreative:      "open-ended creative work",
	registry.ModeConstructive:  "hands-on building work",
	registry.ModeExploratory:   "reading and research",
	registry.ModeReflective:    "review and evaluation",
	registry.ModeOperational:   "running and shipping things",
	registry.ModeMaintenance:   "upkeep and cleanup",
	registry.ModeCommunicative: "writing and explaining for others",
	registry.ModeResting:       "low-activity, standing by",
}

// BuildPrompt turns an ambiguous decision into an ordered choice list,
// capped at max candidates. Returns false when the decision carries
// nothing to choose between.
func BuildPrompt(reg *registry.Registry, res textnorm.Result, d classify.Decision, max int) (Prompt, bool) {
	if d.Outcome != classify.OutcomeAmbiguous || len(d.Ranked) == 0 {
		return Prompt{}, false
	}
	ranked := d.Ranked
	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}

	p := Prompt{Namespace: ranked[0].Namespace, Choices: make([]Choice, 0, len(ranked))}
	for _, cand := range ranked {
		p.Choices = append(p.Choices, Choice{
			ID:         cand.ID,
			Label:      reg.Label(cand.Namespace, cand.ID),
			Hint:       hint(reg, cand.Namespace, cand.ID),
			Excerpt:    excerpt(res, cand),
			Confidence: cand.Confidence,
		})
	}
	return p, true
}

func hint(reg *registry.Registry, ns registry.Namespace, id string) string {
	category := reg.Category(ns, id)
	if ns == registry.NamespaceMode {
		return modeHints[category]
	}
	return commandHints[category]
}

// excerpt renders the candidate's primary matched span, truncated.
func excerpt(res textnorm.Result, cand classify.Candidate) string {
	span, ok := cand.PrimarySpan()
	if !ok || span.End > len(res.Tokens) {
		return ""
	}
	parts := make([]string, 0, span.End-span.Start)
	for _, t := range res.Tokens[span.Start:span.End] {
		parts = append(parts, t.Text)
	}
	return truncate(strings.Join(parts, " "), excerptGraphemes)
}

// truncate cuts s to at most max grapheme clusters, appending an
// ellipsis when anything was dropped.
func truncate(s string, max int) string {
	g := uniseg.NewGraphemes(s)
	n, cut := 0, -1
	for g.Next() {
		if n == max {
			cut, _ = g.Positions()
			break
		}
		n++
	}
	if cut < 0 {
		return s
	}
	return s[:cut] + "…"
}

// ResolveReply maps the user's reply onto a prompt choice: a bare number
// picks by position, anything else fuzzy-matches against the labels.
// ok is false when the reply names none of the choices; the caller then
// re-runs classification on the reply with the previous top candidate
// excluded.
func ResolveReply(p Prompt, reply string) (id string, ok bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", false
	}

	if n, err := strconv.Atoi(reply); err == nil {
		if n >= 1 && n <= len(p.Choices) {
			return p.Choices[n-1].ID, true
		}
		return "", false
	}

	labels := make([]string, len(p.Choices))
	for i, c := range p.Choices {
		labels[i] = c.Label
	}
	matches := fuzzy.Find(reply, labels)
	if len(matches) == 0 {
		// Ids work too; users who know the system type them directly.
		for _, c := range p.Choices {
			if strings.EqualFold(c.ID, reply) {
				return c.ID, true
			}
		}
		return "", false
	}
	return p.Choices[matches[0].Index].ID, true
}
