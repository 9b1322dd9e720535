package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Scopes of key bindings. The scope follows the focused link.
const (
	ScopeMain    = "nav:main"
	ScopeSection = "nav:section"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// KeyRegistry indexes bindings by normalized key. When a key is bound both
// for a specific scope and for "*", the specific binding wins.
type KeyRegistry struct {
	bindings []KeyBinding
	byKey    map[string][]int
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	r := &KeyRegistry{byKey: make(map[string][]int)}
	for _, b := range bindings {
		r.Register(b)
	}
	return r
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	binding.Keys = slices.Clone(binding.Keys)
	r.bindings = append(r.bindings, binding)
	idx := len(r.bindings) - 1
	for _, k := range binding.Keys {
		if k = normalizeKey(k); k != "" {
			r.byKey[k] = append(r.byKey[k], idx)
		}
	}
}

// BindingsForScope lists the bindings visible in scope, in registration
// order.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if inScope(scope, b.Scopes) != noMatch {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the action bound to the pressed key in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	action, best := "", noMatch
	for _, idx := range r.byKey[normalizeKey(msg.String())] {
		b := r.bindings[idx]
		if m := inScope(scope, b.Scopes); m > best {
			action, best = b.Action, m
		}
	}
	return action
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	return action != "" && r.Action(msg, scope) == action
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

type scopeMatch int

const (
	noMatch scopeMatch = iota
	anyScope
	exactScope
)

// inScope reports how a binding's scopes match scope. No scopes means any.
func inScope(scope string, scopes []string) scopeMatch {
	if len(scopes) == 0 {
		return anyScope
	}
	m := noMatch
	for _, s := range scopes {
		switch s {
		case scope:
			return exactScope
		case "*":
			m = anyScope
		}
	}
	return m
}

const (
	actionQuit    = "quit"
	actionNext    = "focus-next"
	actionPrev    = "focus-prev"
	actionOpen    = "open"
	actionUp      = "focus-main"
	actionSection = "section-"
)

// DefaultKeyBindings covers link focus, activation and section jumps. The
// digit bindings are generated for n sections.
func DefaultKeyBindings(sections int) []KeyBinding {
	out := []KeyBinding{
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"tab", "right", "l"}, Action: actionNext, Description: "next link", Scopes: []string{"*"}},
		{Keys: []string{"shift+tab", "left", "h"}, Action: actionPrev, Description: "prev link", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: actionOpen, Description: "open", Scopes: []string{"*"}},
		{Keys: []string{"esc", "up", "k"}, Action: actionUp, Description: "main menu", Scopes: []string{ScopeSection}},
	}
	for i := range sections {
		d := string(rune('1' + i))
		out = append(out, KeyBinding{Keys: []string{d}, Action: actionSection + d, Description: "section " + d, Scopes: []string{"*"}})
	}
	return out
}
