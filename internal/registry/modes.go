// ABOUTME: Built-in cognitive-mode definitions: 50 modes across 9 categories
// ABOUTME: Each carries a display symbol, dwell time, and trigger phrases; key modes cover all five languages

package registry

import (
	"time"

	"github.com/mauromedda/intent-router-go/internal/lang"
)

// Mode categories.
const (
	ModeAnalytical    = "analytical"
	ModeCreative      = "creative"
	ModeConstructive  = "constructive"
	ModeExploratory   = "exploratory"
	ModeReflective    = "reflective"
	ModeOperational   = "operational"
	ModeMaintenance   = "maintenance"
	ModeCommunicative = "communicative"
	ModeResting       = "resting"
)

// ModeCategories lists every mode category in display order.
var ModeCategories = []string{
	ModeAnalytical, ModeCreative, ModeConstructive, ModeExploratory,
	ModeReflective, ModeOperational, ModeMaintenance, ModeCommunicative,
	ModeResting,
}

// en builds a single-language phrase map; the common case for niche modes.
func en(phrases ...string) map[lang.Tag][]string {
	return map[lang.Tag][]string{lang.English: phrases}
}

func builtinModes() []ModeDefinition {
	return []ModeDefinition{
		// analytical
		{ID: "debugging", Category: ModeAnalytical, Label: "Debugging", Symbol: "🐛", Dwell: 5 * time.Second,
			Phrases: map[lang.Tag][]string{
				lang.English:  {"debug", "debugging", "bug", "broken", "crash", "error", "not working", "fix"},
				lang.Spanish:  {"depura", "error", "fallo", "arregla"},
				lang.French:   {"débogue", "bogue", "erreur", "plante"},
				lang.Japanese: {"バグ", "直して", "デバッグ", "エラー", "修正"},
				lang.Korean:   {"버그", "디버그", "에러", "고장"},
			}},
		{ID: "investigating", Category: ModeAnalytical, Label: "Investigating", Symbol: "🔎",
			Phrases: en("investigate", "dig into", "root cause", "why does")},
		{ID: "diagnosing", Category: ModeAnalytical, Label: "Diagnosing", Symbol: "🩺",
			Phrases: en("diagnose", "symptom", "what is wrong")},
		{ID: "tracing", Category: ModeAnalytical, Label: "Tracing", Symbol: "🧵",
			Phrases: en("trace", "stack trace", "follow the call")},
		{ID: "profiling", Category: ModeAnalytical, Label: "Profiling", Symbol: "📈",
			Phrases: en("profile", "slow", "performance", "bottleneck")},
		{ID: "auditing", Category: ModeAnalytical, Label: "Auditing", Symbol: "🔐",
			Phrases: en("audit", "security", "vulnerability")},

		// creative
		{ID: "brainstorming", Category: ModeCreative, Label: "Brainstorming", Symbol: "💡",
			Phrases: map[lang.Tag][]string{
				lang.English:  {"brainstorm", "ideas", "what if", "let's think"},
				lang.Spanish:  {"lluvia de ideas", "ideas"},
				lang.French:   {"remue-méninges", "des idées"},
				lang.Japanese: {"ブレスト", "アイデア"},
				lang.Korean:   {"브레인스토밍", "아이디어"},
			}},
		{ID: "ideating", Category: ModeCreative, Label: "Ideating", Symbol: "🌀",
			Phrases: en("ideate", "concepts", "possibilities")},
		{ID: "sketching", Category: ModeCreative, Label: "Sketching", Symbol: "✏️",
			Phrases: en("sketch", "rough draft", "outline an approach")},
		{ID: "prototyping", Category: ModeCreative, Label: "Prototyping", Symbol: "🧪",
			Phrases: en("prototype", "proof of concept", "spike")},
		{ID: "composing", Category: ModeCreative, Label: "Composing", Symbol: "🎼",
			Phrases: en("compose", "draft the design")},
		{ID: "improvising", Category: ModeCreative, Label: "Improvising", Symbol: "🎲",
			Phrases: en("improvise", "wing it", "try something")},

		// constructive
		{ID: "coding", Category: ModeConstructive, Label: "Coding", Symbol: "⌨", Dwell: 4 * time.Second,
			Phrases: map[lang.Tag][]string{
				lang.English:  {"code", "coding", "implement", "write the function", "build"},
				lang.Spanish:  {"programa", "implementa", "código"},
				lang.French:   {"programme", "implémente", "code"},
				lang.Japanese: {"実装", "コード", "書いて"},
				lang.Korean:   {"코딩", "구현", "코드"},
			}},
		{ID: "building", Category: ModeConstructive, Label: "Building", Symbol: "🏗",
			Phrases: en("building", "assemble the feature", "construct")},
		{ID: "implementing", Category: ModeConstructive, Label: "Implementing", Symbol: "🔧",
			Phrases: en("implementing", "wire up", "fill in the body")},
		{ID: "scaffolding", Category: ModeConstructive, Label: "Scaffolding", Symbol: "🪜",
			Phrases: en("scaffold", "boilerplate", "project skeleton")},
		{ID: "wiring", Category: ModeConstructive, Label: "Wiring", Symbol: "🔌",
			Phrases: en("wiring", "connect the pieces", "plumb through")},
		{ID: "assembling", Category: ModeConstructive, Label: "Assembling", Symbol: "🧩",
			Phrases: en("assembling", "put together", "integrate the parts")},

		// exploratory
		{ID: "researching", Category: ModeExploratory, Label: "Researching", Symbol: "📚",
			Phrases: map[lang.Tag][]string{
				lang.English:  {"research", "learn about", "look up", "compare options"},
				lang.Spanish:  {"investiga", "averigua"},
				lang.French:   {"recherche sur", "renseigne-toi"},
				lang.Japanese: {"調査", "調べて"},
				lang.Korean:   {"조사", "알아봐줘"},
			}},
		{ID: "exploring", Category: ModeExploratory, Label: "Exploring", Symbol: "🧭",
			Phrases: en("explore", "browse the code", "wander through")},
		{ID: "scanning", Category: ModeExploratory, Label: "Scanning", Symbol: "📡",
			Phrases: en("scan", "skim", "quick pass")},
		{ID: "reading", Category: ModeExploratory, Label: "Reading", Symbol: "📖",
			Phrases: en("reading", "read the file", "walk me through the file")},
		{ID: "surveying", Category: ModeExploratory, Label: "Surveying", Symbol: "🗺",
			Phrases: en("survey", "map the codebase", "overview of")},

		// reflective
		{ID: "reviewing", Category: ModeReflective, Label: "Reviewing", Symbol: "🧐",
			Phrases: map[lang.Tag][]string{
				lang.English:  {"review", "look over", "critique"},
				lang.Spanish:  {"revisa", "revisión"},
				lang.French:   {"relis", "revue"},
				lang.Japanese: {"レビュー", "見直して"},
				lang.Korean:   {"리뷰", "검토"},
			}},
		{ID: "evaluating", Category: ModeReflective, Label: "Evaluating", Symbol: "⚖",
			Phrases: en("evaluate", "weigh", "trade-offs")},
		{ID: "retrospecting", Category: ModeReflective, Label: "Retrospecting", Symbol: "🪞",
			Phrases: en("retrospective", "what went wrong", "lessons learned")},
		{ID: "pondering", Category: ModeReflective, Label: "Pondering", Symbol: "💭",
			Phrases: en("ponder", "think about", "mull over")},
		{ID: "assessing", Category: ModeReflective, Label: "Assessing", Symbol: "📋",
			Phrases: en("assess", "estimate", "how big is")},

		// operational
		{ID: "deploying", Category: ModeOperational, Label: "Deploying", Symbol: "🚀",
			Phrases: en("deploy", "ship it", "push to production")},
		{ID: "configuring", Category: ModeOperational, Label: "Configuring", Symbol: "⚙",
			Phrases: en("configure", "settings", "set up the environment")},
		{ID: "migrating", Category: ModeOperational, Label: "Migrating", Symbol: "🚚",
			Phrases: en("migrate", "migration", "move the data")},
		{ID: "releasing", Category: ModeOperational, Label: "Releasing", Symbol: "🏁",
			Phrases: en("release", "cut a release", "tag the version")},
		{ID: "automating", Category: ModeOperational, Label: "Automating", Symbol: "🤖",
			Phrases: en("automate", "pipeline", "cron")},
		{ID: "monitoring", Category: ModeOperational, Label: "Monitoring", Symbol: "📟",
			Phrases: en("monitor", "watch the logs", "alerting")},

		// maintenance
		{ID: "refactoring", Category: ModeMaintenance, Label: "Refactoring", Symbol: "♻",
			Phrases: map[lang.Tag][]string{
				lang.English:  {"refactoring", "restructure", "clean up"},
				lang.Spanish:  {"refactoriza"},
				lang.French:   {"refactorise"},
				lang.Japanese: {"リファクタリング", "整理"},
				lang.Korean:   {"리팩토링"},
			}},
		{ID: "cleaning", Category: ModeMaintenance, Label: "Cleaning", Symbol: "🧹",
			Phrases: en("cleaning", "remove dead code", "sweep")},
		{ID: "pruning", Category: ModeMaintenance, Label: "Pruning", Symbol: "✂",
			Phrases: en("prune", "trim", "drop unused")},
		{ID: "patching", Category: ModeMaintenance, Label: "Patching", Symbol: "🩹",
			Phrases: en("patch", "hotfix", "band-aid")},
		{ID: "upgrading", Category: ModeMaintenance, Label: "Upgrading", Symbol: "⬆",
			Phrases: en("upgrade", "bump the version", "update dependencies")},
		{ID: "tidying", Category: ModeMaintenance, Label: "Tidying", Symbol: "🗂",
			Phrases: en("tidy", "organize the files", "sort out")},

		// communicative
		{ID: "explaining", Category: ModeCommunicative, Label: "Explaining", Symbol: "🗣",
			Phrases: map[lang.Tag][]string{
				lang.English:  {"explain", "what does", "how does"},
				lang.Spanish:  {"explica", "explícame"},
				lang.French:   {"explique"},
				lang.Japanese: {"説明", "解説"},
				lang.Korean:   {"설명"},
			}},
		{ID: "documenting", Category: ModeCommunicative, Label: "Documenting", Symbol: "📝",
			Phrases: en("document", "write docs", "readme")},
		{ID: "summarizing", Category: ModeCommunicative, Label: "Summarizing", Symbol: "🧾",
			Phrases: en("summarize", "tldr", "recap")},
		{ID: "teaching", Category: ModeCommunicative, Label: "Teaching", Symbol: "🎓",
			Phrases: en("teach", "tutorial", "show me how")},
		{ID: "presenting", Category: ModeCommunicative, Label: "Presenting", Symbol: "📽",
			Phrases: en("present", "demo", "walkthrough")},

		// resting
		{ID: "idle", Category: ModeResting, Label: "Idle", Symbol: "💤", Dwell: 10 * time.Second,
			Phrases: en("idle", "never mind", "nothing")},
		{ID: "waiting", Category: ModeResting, Label: "Waiting", Symbol: "⏳",
			Phrases: en("wait", "hold on", "one moment")},
		{ID: "pausing", Category: ModeResting, Label: "Pausing", Symbol: "⏸",
			Phrases: en("pause", "take a break", "stop for now")},
		{ID: "observing", Category: ModeResting, Label: "Observing", Symbol: "👀",
			Phrases: en("observe", "just watch", "stand by")},
		{ID: "listening", Category: ModeResting, Label: "Listening", Symbol: "👂",
			Phrases: en("listen", "i'll explain", "let me describe")},
	}
}

// builtinModeIDs returns the mode ids; the mode.set command's enum values.
func builtinModeIDs() []string {
	modes := builtinModes()
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.ID
	}
	return out
}
