package views

import (
	"testing"
	"time"

	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"today", time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC), "09:05"},
		{"yesterday", time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC), "03/13"},
		{"last year same day", time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC), "03/14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTimestamp(tt.at.UnixMilli(), now); got != tt.want {
				t.Errorf("formatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := formatTimestamp(0, now); got != "" {
		t.Errorf("formatTimestamp(0) = %q, want empty", got)
	}
}

func TestChatListKeepsSelection(t *testing.T) {
	cl := NewChatList(ui.DefaultTheme())
	cl.Update([]store.Chat{
		{JID: "a@s.whatsapp.net", Name: "Ana"},
		{JID: "b@s.whatsapp.net", Name: "Bruno"},
	})
	if got := cl.SelectedChat(); got != "a@s.whatsapp.net" {
		t.Fatalf("SelectedChat() = %q, want first row", got)
	}

	cl.Select(2, 0)
	cl.Update([]store.Chat{
		{JID: "c@g.us", Name: "Family", IsGroup: true},
		{JID: "a@s.whatsapp.net", Name: "Ana"},
		{JID: "b@s.whatsapp.net", Name: "Bruno"},
	})
	if got := cl.SelectedChat(); got != "b@s.whatsapp.net" {
		t.Errorf("SelectedChat() = %q, want cursor to follow Bruno", got)
	}
	if c, ok := cl.Chat("c@g.us"); !ok || !c.IsGroup {
		t.Errorf("Chat(c@g.us) = %+v, %v", c, ok)
	}
	if got := cl.GetCell(1, 0).Text; got != " Family (group)" {
		t.Errorf("group cell = %q", got)
	}
}

func TestChatListEmpty(t *testing.T) {
	cl := NewChatList(ui.DefaultTheme())
	cl.Update(nil)
	if got := cl.SelectedChat(); got != "" {
		t.Errorf("SelectedChat() = %q, want empty", got)
	}
}
