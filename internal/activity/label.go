package activity

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// GlyphWidth is the number of cells reserved for the animation to the left of the label.
const GlyphWidth = 4

const ellipsis = "…"

// Label is a single-line status phrase measured for a given width.
type Label struct {
	Text      string // full phrase
	Visible   string // Text truncated to fit the measured width
	Width     int    // display cells used by Visible
	Height    int
	Truncated bool
	Color     tcell.Color
}

// NewLabel measures text against maxWidth cells. Line breaks are folded into
// spaces since the label is always exactly one line.
func NewLabel(text string, maxWidth int, color tcell.Color) *Label {
	text = strings.Join(strings.Fields(text), " ")
	if maxWidth < 0 {
		maxWidth = 0
	}

	visible := text
	switch {
	case runewidth.StringWidth(text) <= maxWidth:
	case maxWidth <= runewidth.StringWidth(ellipsis):
		visible = runewidth.Truncate(text, maxWidth, "")
	default:
		visible = runewidth.Truncate(text, maxWidth, ellipsis)
	}

	return &Label{
		Text:      text,
		Visible:   visible,
		Width:     runewidth.StringWidth(visible),
		Height:    1,
		Truncated: visible != text,
		Color:     color,
	}
}
