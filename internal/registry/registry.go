// ABOUTME: Closed registries of IntentDefinitions and ModeDefinitions with startup validation
// ABOUTME: Read-only after construction; duplicate ids or missing phrase coverage abort at load

package registry

import (
	"fmt"
	"sort"
	"time"

	"github.com/mauromedda/intent-router-go/internal/lang"
)

// Namespace separates the two candidate spaces. Classification runs
// independently per namespace.
type Namespace string

const (
	NamespaceCommand Namespace = "command"
	NamespaceMode    Namespace = "mode"
)

// ParamKind is the extraction rule applied to a command parameter.
type ParamKind string

const (
	ParamText     ParamKind = "text"
	ParamEnum     ParamKind = "enum"
	ParamDuration ParamKind = "duration"
	ParamPath     ParamKind = "path"
)

// ParamSpec describes one parameter of a command.
type ParamSpec struct {
	Name     string
	Kind     ParamKind
	Required bool
	Values   []string // enum values; nil for other kinds
}

// IntentDefinition is one executable command the engine can resolve to.
// Immutable after registry load.
type IntentDefinition struct {
	ID       string
	Category string
	Label    string
	Params   []ParamSpec
	// Phrases maps each language to canonical phrases and synonyms.
	// Phrases are matched against the normalized token stream, so they
	// are normalized with the same pipeline at dictionary build time.
	Phrases map[lang.Tag][]string
	// Slash lists slash-command literals (without the slash) that
	// resolve this command at full quality in any language.
	Slash []string
}

// ModeDefinition is one cognitive-mode label the engine can choose.
// Immutable after registry load.
type ModeDefinition struct {
	ID       string
	Category string
	Label    string
	Symbol   string
	// Dwell is the minimum time the mode stays displayed before another
	// transition is permitted. Zero means the governor default applies.
	Dwell   time.Duration
	Phrases map[lang.Tag][]string
}

// Registry owns both namespaces. It is read-only after New returns.
type Registry struct {
	commands  map[string]IntentDefinition
	modes     map[string]ModeDefinition
	cmdOrder  []string
	modeOrder []string
}

// New validates and indexes the given definitions. Duplicate ids within a
// namespace, empty categories, or commands lacking phrase coverage in a
// supported language are fatal: the engine must refuse to start rather
// than misroute requests later.
func New(commands []IntentDefinition, modes []ModeDefinition) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]IntentDefinition, len(commands)),
		modes:    make(map[string]ModeDefinition, len(modes)),
	}

	for _, c := range commands {
		if c.ID == "" || c.Category == "" {
			return nil, fmt.Errorf("command %q: id and category are required", c.ID)
		}
		if _, dup := r.commands[c.ID]; dup {
			return nil, fmt.Errorf("duplicate command id %q", c.ID)
		}
		for _, tag := range lang.Supported {
			if len(c.Phrases[tag]) == 0 {
				return nil, fmt.Errorf("command %q: no phrases for language %s", c.ID, tag)
			}
		}
		for _, p := range c.Params {
			if p.Kind == ParamEnum && len(p.Values) == 0 {
				return nil, fmt.Errorf("command %q: enum parameter %q has no values", c.ID, p.Name)
			}
		}
		r.commands[c.ID] = c
		r.cmdOrder = append(r.cmdOrder, c.ID)
	}

	for _, m := range modes {
		if m.ID == "" || m.Category == "" {
			return nil, fmt.Errorf("mode %q: id and category are required", m.ID)
		}
		if _, dup := r.modes[m.ID]; dup {
			return nil, fmt.Errorf("duplicate mode id %q", m.ID)
		}
		if len(m.Phrases[lang.English]) == 0 {
			return nil, fmt.Errorf("mode %q: no English phrases", m.ID)
		}
		r.modes[m.ID] = m
		r.modeOrder = append(r.modeOrder, m.ID)
	}

	sort.Strings(r.cmdOrder)
	sort.Strings(r.modeOrder)
	return r, nil
}

// BuiltIn returns the registry holding the fixed built-in commands and
// modes.
func BuiltIn() (*Registry, error) {
	return New(builtinCommands(), builtinModes())
}

// Command looks up a command definition by id.
func (r *Registry) Command(id string) (IntentDefinition, bool) {
	c, ok := r.commands[id]
	return c, ok
}

// Mode looks up a mode definition by id.
func (r *Registry) Mode(id string) (ModeDefinition, bool) {
	m, ok := r.modes[id]
	return m, ok
}

// Commands returns all command definitions in stable id order.
func (r *Registry) Commands() []IntentDefinition {
	out := make([]IntentDefinition, 0, len(r.cmdOrder))
	for _, id := range r.cmdOrder {
		out = append(out, r.commands[id])
	}
	return out
}

// Modes returns all mode definitions in stable id order.
func (r *Registry) Modes() []ModeDefinition {
	out := make([]ModeDefinition, 0, len(r.modeOrder))
	for _, id := range r.modeOrder {
		out = append(out, r.modes[id])
	}
	return out
}

// Category returns the category of a candidate id within a namespace, or
// "" when the id is unknown.
func (r *Registry) Category(ns Namespace, id string) string {
	switch ns {
	case NamespaceCommand:
		if c, ok := r.commands[id]; ok {
			return c.Category
		}
	case NamespaceMode:
		if m, ok := r.modes[id]; ok {
			return m.Category
		}
	}
	return ""
}

// Siblings returns the ids sharing a category with id in the namespace,
// excluding id itself. The feedback store decays these on acceptance.
func (r *Registry) Siblings(ns Namespace, id string) []string {
	category := r.Category(ns, id)
	if category == "" {
		return nil
	}
	var out []string
	switch ns {
	case NamespaceCommand:
		for _, other := range r.cmdOrder {
			if other != id && r.commands[other].Category == category {
				out = append(out, other)
			}
		}
	case NamespaceMode:
		for _, other := range r.modeOrder {
			if other != id && r.modes[other].Category == category {
				out = append(out, other)
			}
		}
	}
	return out
}

// Label returns the display label for a candidate id, falling back to the
// id itself.
func (r *Registry) Label(ns Namespace, id string) string {
	switch ns {
	case NamespaceCommand:
		if c, ok := r.commands[id]; ok && c.Label != "" {
			return c.Label
		}
	case NamespaceMode:
		if m, ok := r.modes[id]; ok && m.Label != "" {
			return m.Label
		}
	}
	return id
}
