package keys

import (
	"slices"

	"github.com/gdamore/tcell/v2"
)

// Action is a key binding.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Label       string // key as shown in hints, e.g. "Esc"
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Hint renders the action for the status bar, e.g. "<q> quit".
func (a *Action) Hint() string {
	label := a.Label
	if label == "" {
		label = string(a.Rune)
	}
	return "<" + label + "> " + a.Description
}

// Registry holds key bindings per page plus global ones, in registration
// order.
type Registry struct {
	global []*Action
	views  map[string][]*Action
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string][]*Action)}
}

// AddGlobal registers a binding active on every page.
func (r *Registry) AddGlobal(action *Action) {
	r.global = append(r.global, action)
}

// AddView registers a binding for one page.
func (r *Registry) AddView(view string, action *Action) {
	r.views[view] = append(r.views[view], action)
}

// Hints returns the visible hints for a page, page bindings first.
func (r *Registry) Hints(view string) []string {
	var hints []string
	for _, a := range slices.Concat(r.views[view], r.global) {
		if a.Visible {
			hints = append(hints, a.Hint())
		}
	}
	return hints
}

// HandleEvent dispatches a key event to the first matching action of the
// page, then the global ones. Returns true if a handler ran.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	for _, scope := range [][]*Action{r.views[view], r.global} {
		for _, a := range scope {
			if a.Matches(ev) {
				a.Handler()
				return true
			}
		}
	}
	return false
}
