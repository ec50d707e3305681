package views

import (
	"strings"
	"testing"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
)

func TestChatPageShow(t *testing.T) {
	p := NewChatPage(ui.DefaultTheme(), nil)
	p.Show(store.Chat{JID: "123@g.us", Name: "Family", IsGroup: true})

	header := p.header.GetText(true)
	for _, want := range []string{"Family", "123@g.us", "group"} {
		if !strings.Contains(header, want) {
			t.Errorf("header = %q, missing %q", header, want)
		}
	}
	if p.ActivityVisible() {
		t.Error("activity bar visible on a fresh chat")
	}
	if got := p.details.GetText(true); !strings.Contains(got, "nobody") {
		t.Errorf("details = %q", got)
	}
}

func TestChatPageActivityRow(t *testing.T) {
	p := NewChatPage(ui.DefaultTheme(), nil)
	p.SetActivityVisible(true)
	if !p.ActivityVisible() {
		t.Error("SetActivityVisible(true) did not show the bar")
	}
	p.SetActivityVisible(false)
	if p.ActivityVisible() {
		t.Error("SetActivityVisible(false) did not collapse the bar")
	}
}

func TestChatPageParticipants(t *testing.T) {
	p := NewChatPage(ui.DefaultTheme(), nil)
	p.ShowParticipants(activity.Snapshot{
		ChatID: "123@g.us",
		Activities: []activity.ParticipantActivity{
			{Participant: activity.Participant{ID: "a", Name: "Ana"}, Kind: activity.RecordingVoice},
			{Participant: activity.Participant{ID: "b"}, Kind: activity.TypingText},
			{Participant: activity.Participant{ID: "a", Name: "Ana"}, Kind: activity.TypingText},
		},
	})
	got := p.details.GetText(true)
	if !strings.Contains(got, "Ana recording voice") || !strings.Contains(got, "b typing text") {
		t.Errorf("details = %q", got)
	}
	if strings.Count(got, "Ana") != 1 {
		t.Errorf("details = %q, want Ana listed once", got)
	}
}
