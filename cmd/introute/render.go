// ABOUTME: Terminal rendering for classification results and registry listings
// ABOUTME: Lipgloss styles for color, runewidth for column alignment with CJK labels

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/intent-router-go/internal/disambig"
	"github.com/mauromedda/intent-router-go/internal/engine"
	"github.com/mauromedda/intent-router-go/internal/eventbus"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

var (
	styleResolved   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleAmbiguous  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleUnresolved = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLabel      = lipgloss.NewStyle().Bold(true)
)

func renderResult(res engine.Result) string {
	var b strings.Builder

	switch res.Status {
	case engine.StatusResolved:
		fmt.Fprintf(&b, "%s %s %s\n",
			styleResolved.Render("✓"),
			styleLabel.Render(res.Command.Label),
			styleDim.Render(fmt.Sprintf("(%s, %.0f%%)", res.Command.CommandID, res.Command.Confidence*100)))
		for name, v := range res.Command.Params {
			fmt.Fprintf(&b, "  %s = %s\n", pad(name, 10), v.Text)
		}
		if res.ParamError != nil {
			fmt.Fprintf(&b, "  %s %v\n", styleUnresolved.Render("!"), res.ParamError)
		}
	case engine.StatusAmbiguous:
		fmt.Fprintf(&b, "%s did you mean:\n", styleAmbiguous.Render("?"))
		for i, c := range res.Prompt.Choices {
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1, pad(c.Label, 24), styleDim.Render(c.Hint))
		}
	case engine.StatusEmptyInput:
		fmt.Fprintf(&b, "%s\n", styleDim.Render("(empty input)"))
	default:
		fmt.Fprintf(&b, "%s no confident match", styleUnresolved.Render("✗"))
		if len(res.CommandCandidates) > 0 {
			top := res.CommandCandidates[0]
			fmt.Fprintf(&b, " %s", styleDim.Render(fmt.Sprintf("(best guess %s at %.0f%%)", top.ID, top.Confidence*100)))
		}
		b.WriteString("\n")
	}

	if res.Mode != nil {
		fmt.Fprintf(&b, "%s\n", styleDim.Render(fmt.Sprintf("mode: %s %s", res.Mode.Symbol, res.Mode.Label)))
	}
	return b.String()
}

func renderPick(p *disambig.Prompt, id string) string {
	for _, c := range p.Choices {
		if c.ID == id {
			return fmt.Sprintf("%s %s\n", styleResolved.Render("✓"), styleLabel.Render(c.Label))
		}
	}
	return ""
}

func renderCommands(defs []registry.IntentDefinition) string {
	var b strings.Builder
	for _, d := range defs {
		slash := ""
		if len(d.Slash) > 0 {
			slash = "/" + strings.Join(d.Slash, " /")
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			pad(d.ID, 16),
			pad(d.Label, 26),
			styleDim.Render(slash))
	}
	return b.String()
}

// renderModeChange announces a transition published on the event bus.
func renderModeChange(ev eventbus.ModeChanged) string {
	from := ev.From
	if from == "" {
		from = "-"
	}
	return styleDim.Render(fmt.Sprintf("mode %s → %s", from, ev.To)) + "\n"
}

func renderModes(defs []registry.ModeDefinition) string {
	var b strings.Builder
	for _, d := range defs {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			d.Symbol,
			pad(d.ID, 16),
			pad(d.Label, 18),
			styleDim.Render(d.Category))
	}
	return b.String()
}

// pad right-pads to the given display width, CJK-aware.
func pad(s string, w int) string {
	gap := w - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
