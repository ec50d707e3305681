package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEventPrefersView(t *testing.T) {
	r := NewRegistry()
	var got string
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'q', Description: "quit", Visible: true, Handler: func() { got = "global" }})
	r.AddView("chat", &Action{Key: tcell.KeyRune, Rune: 'q', Description: "back", Visible: true, Handler: func() { got = "view" }})

	if !r.HandleEvent("chat", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) || got != "view" {
		t.Errorf("chat page handled by %q, want view", got)
	}
	if !r.HandleEvent("chats", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) || got != "global" {
		t.Errorf("chats page handled by %q, want global", got)
	}
	if r.HandleEvent("chats", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("unbound key reported as handled")
	}
}

func TestHandleEventSpecialKey(t *testing.T) {
	r := NewRegistry()
	called := false
	r.AddView("chat", &Action{Key: tcell.KeyEscape, Label: "Esc", Description: "back", Handler: func() { called = true }})

	if !r.HandleEvent("chat", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) || !called {
		t.Error("Esc binding not dispatched")
	}
}

func TestHints(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'q', Description: "quit", Visible: true})
	r.AddView("chat", &Action{Key: tcell.KeyEscape, Label: "Esc", Description: "back", Visible: true})
	r.AddView("chat", &Action{Key: tcell.KeyRune, Rune: 'r', Description: "hidden"})

	hints := r.Hints("chat")
	want := []string{"<Esc> back", "<q> quit"}
	if len(hints) != len(want) {
		t.Fatalf("Hints() = %v, want %v", hints, want)
	}
	for i := range want {
		if hints[i] != want[i] {
			t.Errorf("Hints()[%d] = %q, want %q", i, hints[i], want[i])
		}
	}
}
