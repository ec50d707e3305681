package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatPage shows one chat: a header, the activity bar under it and the list
// of participants currently doing something.
type ChatPage struct {
	*tview.Flex
	theme   *ui.Theme
	header  *tview.TextView
	bar     *ActivityBar
	details *tview.TextView
	chat    store.Chat
	barRows int
}

// NewChatPage creates a chat page. redraw is passed to the activity bar.
func NewChatPage(theme *ui.Theme, redraw func()) *ChatPage {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetBackgroundColor(theme.BgColor)

	details := tview.NewTextView().SetDynamicColors(true)
	details.SetBorder(true).
		SetTitle(" Activity ").
		SetTitleColor(theme.TitleColor).
		SetBorderColor(theme.BorderColor).
		SetBackgroundColor(theme.BgColor)

	p := &ChatPage{
		theme:   theme,
		header:  header,
		bar:     NewActivityBar(redraw),
		details: details,
	}
	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 2, 0, false).
		AddItem(p.bar, 0, 0, false).
		AddItem(details, 0, 1, true)
	return p
}

// Bar returns the activity bar.
func (p *ChatPage) Bar() *ActivityBar { return p.bar }

// Chat returns the chat being shown.
func (p *ChatPage) Chat() store.Chat { return p.chat }

// Show switches the page to chat and clears the participant list.
func (p *ChatPage) Show(chat store.Chat) {
	p.chat = chat
	kind := "direct"
	if chat.IsGroup {
		kind = "group"
	}
	if at := formatTimestamp(chat.LastMessageAt, time.Now()); at != "" {
		kind += " · last message " + at
	}
	name := chat.Name
	if name == "" {
		name = chat.JID
	}
	p.header.SetText(fmt.Sprintf(" [%s::b]%s[-::-]\n [%s]%s · %s[-]",
		ui.ColorName(p.theme.TitleColor), tview.Escape(sanitizeForTerminal(name)),
		ui.ColorName(p.theme.CounterColor), tview.Escape(chat.JID), kind))
	p.SetActivityVisible(false)
	p.ShowParticipants(activity.Snapshot{ChatID: chat.JID})
}

// SetActivityVisible gives the activity bar one row, or collapses it.
func (p *ChatPage) SetActivityVisible(visible bool) {
	rows := 0
	if visible {
		rows = 1
	}
	if rows == p.barRows {
		return
	}
	p.barRows = rows
	p.ResizeItem(p.bar, rows, 0)
}

// ActivityVisible reports whether the bar currently takes a row.
func (p *ChatPage) ActivityVisible() bool { return p.barRows > 0 }

// ShowParticipants lists who is active in snap.
func (p *ChatPage) ShowParticipants(snap activity.Snapshot) {
	acts := snap.Unique()
	if len(acts) == 0 {
		p.details.SetText(fmt.Sprintf("\n [%s]nobody is typing[-]", ui.ColorName(p.theme.CounterColor)))
		return
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, a := range acts {
		name := a.Participant.Name
		if name == "" {
			name = a.Participant.ID
		}
		fmt.Fprintf(&b, " [%s]%s[-] %s\n", ui.ColorName(p.theme.ActiveColor),
			tview.Escape(sanitizeForTerminal(name)), kindText(a.Kind))
	}
	p.details.SetText(b.String())
}

func kindText(k activity.Kind) string {
	return strings.ReplaceAll(string(k), "_", " ")
}
