package views

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatList is the table of known chats, most recent first.
type ChatList struct {
	*tview.Table
	theme *ui.Theme
	chats []store.Chat
	now   func() time.Time
}

// NewChatList creates an empty chat list.
func NewChatList(theme *ui.Theme) *ChatList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetBorders(false)
	table.SetBorder(true).
		SetTitle(" Chats ").
		SetBorderColor(theme.BorderColor).
		SetTitleColor(theme.TitleColor).
		SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.Foreground(theme.TableCursorFg).Background(theme.TableCursorBg))

	return &ChatList{Table: table, theme: theme, now: time.Now}
}

// Update replaces the rows, keeping the cursor on the same chat when it is
// still listed.
func (cl *ChatList) Update(chats []store.Chat) {
	selected := cl.SelectedChat()
	cl.chats = chats
	cl.Clear()

	for col, title := range []string{" Name", " Last Message", " Time"} {
		cl.SetCell(0, col, tview.NewTableCell(title).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg))
	}

	row := 1
	for i, chat := range chats {
		name := chat.Name
		if name == "" {
			name = chat.JID
		}
		if chat.IsGroup {
			name += " (group)"
		}
		cl.SetCell(i+1, 0, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(name))).SetMaxWidth(30).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(i+1, 1, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(chat.LastMessagePreview))).SetMaxWidth(40).SetExpansion(2).SetTextColor(cl.theme.FgColor))
		cl.SetCell(i+1, 2, tview.NewTableCell(" "+formatTimestamp(chat.LastMessageAt, cl.now())).SetMaxWidth(12).SetTextColor(cl.theme.CounterColor))
		if chat.JID == selected {
			row = i + 1
		}
	}
	cl.Select(row, 0)
	cl.SetTitle(" Chats (" + strconv.Itoa(len(chats)) + ") ")
}

// SelectedChat returns the JID under the cursor, or "" when the list is empty.
func (cl *ChatList) SelectedChat() string {
	if c := cl.selected(); c != nil {
		return c.JID
	}
	return ""
}

// Chat returns the listed chat with the given JID.
func (cl *ChatList) Chat(jid string) (store.Chat, bool) {
	for _, c := range cl.chats {
		if c.JID == jid {
			return c, true
		}
	}
	return store.Chat{}, false
}

func (cl *ChatList) selected() *store.Chat {
	row, _ := cl.GetSelection()
	idx := row - 1 // header
	if idx >= 0 && idx < len(cl.chats) {
		return &cl.chats[idx]
	}
	return nil
}

func formatTimestamp(ms int64, now time.Time) string {
	if ms == 0 {
		return ""
	}
	t := time.UnixMilli(ms).In(now.Location())
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}
