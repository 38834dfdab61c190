// Package palette implements the command palette: a static list of actions,
// a filter, an active row, and an open/closed lifecycle.
//
// Transitions are pure functions over Session values. They never touch a
// terminal or a DOM; instead they return Effects that a thin adapter applies.
package palette

import "strings"

// Action is a user-invocable command. Actions are immutable for the lifetime
// of a Palette.
type Action struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Destination string `json:"destination" yaml:"destination"`
	External    bool   `json:"external,omitempty" yaml:"external,omitempty"`
}

// Matches reports whether f is a case-insensitive substring of the action's
// title or description. The empty filter matches everything.
func (a Action) Matches(f string) bool {
	if f == "" {
		return true
	}
	f = strings.ToLower(f)
	return strings.Contains(strings.ToLower(a.Title), f) ||
		strings.Contains(strings.ToLower(a.Description), f)
}

// Anchor returns the in-page anchor for an internal action, always prefixed
// with '#'. External actions return "".
func (a Action) Anchor() string {
	if a.External {
		return ""
	}
	return NormalizeAnchor(a.Destination)
}

// NormalizeAnchor turns "contact", "#contact" and " #contact " into "#contact".
// An empty destination stays empty.
func NormalizeAnchor(dest string) string {
	dest = strings.TrimSpace(dest)
	dest = strings.TrimLeft(dest, "#")
	if dest == "" {
		return ""
	}
	return "#" + dest
}

// Filter returns the actions matching f in their original order. The input
// slice is never modified; the result is always a fresh slice.
func Filter(actions []Action, f string) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.Matches(f) {
			out = append(out, a)
		}
	}
	return out
}

// Execute maps an action to the navigation effect it causes.
func Execute(a Action) Effect {
	if a.External {
		return Effect{Kind: EffectOpenExternal, Target: strings.TrimSpace(a.Destination)}
	}
	return Effect{Kind: EffectNavigate, Target: a.Anchor()}
}
