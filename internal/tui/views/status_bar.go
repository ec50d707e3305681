package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/status"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar is the bottom line: session, connection state, key hints and
// the current flash message.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	flash   *ui.Flash
	session string
	state   status.State
	hints   []string
}

// NewStatusBar creates a status bar reading notifications from flash.
func NewStatusBar(theme *ui.Theme, flash *ui.Flash) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	return &StatusBar{TextView: tv, theme: theme, flash: flash, state: status.Booting}
}

// SetSession updates the session name.
func (sb *StatusBar) SetSession(name string) {
	sb.session = name
	sb.Refresh()
}

// SetState updates the connection state.
func (sb *StatusBar) SetState(s status.State) {
	sb.state = s
	sb.Refresh()
}

// SetHints replaces the key hints.
func (sb *StatusBar) SetHints(hints []string) {
	sb.hints = hints
	sb.Refresh()
}

// Refresh re-renders the line. Call it periodically so expired flash
// messages disappear.
func (sb *StatusBar) Refresh() {
	sb.SetText(sb.render())
}

func (sb *StatusBar) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, " [::b]%s[::-] | [%s]%s[-]", tview.Escape(sb.session), ui.ColorName(sb.stateColor()), sb.state)

	if len(sb.hints) > 0 {
		keyColor := ui.ColorName(sb.theme.MenuKeyColor)
		b.WriteString(" |")
		for _, h := range sb.hints {
			fmt.Fprintf(&b, " [%s]%s[-]", keyColor, tview.Escape(h))
		}
	}
	if msg := sb.theme.Format(sb.flash.Current()); msg != "" {
		b.WriteString(" | ")
		b.WriteString(msg)
	}
	return b.String()
}

func (sb *StatusBar) stateColor() tcell.Color {
	switch sb.state {
	case status.Online:
		return sb.theme.ActiveColor
	case status.Error:
		return sb.theme.FlashErrColor
	case status.Reconnecting, status.AuthRequired:
		return sb.theme.FlashWarnColor
	default:
		return sb.theme.CounterColor
	}
}
