package views

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/rivo/tview"
)

// ActivityBar is the one-row strip under a chat header showing the animated
// glyph and the activity label. It implements activity.Surface.
//
// Surface methods and Draw run on the UI goroutine. Animation frames arrive
// from the player's goroutine; redraw requests are coalesced and issued from
// a separate goroutine so a busy UI queue never holds up the player.
type ActivityBar struct {
	*tview.Box
	player  *activity.Player
	redraw  func()
	pending atomic.Bool

	mu    sync.Mutex
	glyph string
	label *activity.Label
	inset int
}

var _ activity.Surface = (*ActivityBar)(nil)

// NewActivityBar creates a bar. redraw is called after every animation frame
// and must be safe to call from any goroutine other than the UI one.
func NewActivityBar(redraw func()) *ActivityBar {
	b := &ActivityBar{Box: tview.NewBox(), redraw: redraw}
	b.player = activity.NewPlayer(b.onFrame)
	return b
}

func (b *ActivityBar) onFrame(frame string) {
	b.mu.Lock()
	b.glyph = frame
	b.mu.Unlock()
	// An empty frame comes from Stop on the caller's goroutine, which
	// redraws on its own.
	if frame == "" || b.redraw == nil || !b.pending.CompareAndSwap(false, true) {
		return
	}
	go func() {
		b.pending.Store(false)
		b.redraw()
	}()
}

// SetBackground implements activity.Surface.
func (b *ActivityBar) SetBackground(c tcell.Color) {
	b.SetBackgroundColor(c)
}

// SetLabel implements activity.Surface.
func (b *ActivityBar) SetLabel(l *activity.Label, leftInset int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = l
	b.inset = leftInset
}

// PlayAnimation implements activity.Surface.
func (b *ActivityBar) PlayAnimation(a activity.Animation, theme activity.Theme) {
	b.player.Play(a, theme)
}

// StopAnimation implements activity.Surface.
func (b *ActivityBar) StopAnimation() {
	b.player.Stop()
}

// Size implements activity.Surface.
func (b *ActivityBar) Size() (int, int) {
	_, _, w, h := b.GetInnerRect()
	return w, h
}

// Detach pauses the animation while the bar is off screen.
func (b *ActivityBar) Detach() {
	b.player.Detach()
}

// Attach resumes the animation when the bar is shown again.
func (b *ActivityBar) Attach() {
	b.player.Attach()
}

// Text returns the glyph and visible label, as drawn.
func (b *ActivityBar) Text() (glyph, label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.label != nil {
		label = b.label.Visible
	}
	return b.glyph, label
}

// Draw implements tview.Primitive.
func (b *ActivityBar) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, w, h := b.GetInnerRect()
	if w <= 0 || h <= 0 {
		return
	}

	b.mu.Lock()
	glyph, label, inset := b.glyph, b.label, b.inset
	b.mu.Unlock()
	if label == nil {
		return
	}

	tview.Print(screen, tview.Escape(glyph), x, y, min(inset, w), tview.AlignLeft, label.Color)
	if w > inset {
		tview.Print(screen, tview.Escape(label.Visible), x+inset, y, w-inset, tview.AlignLeft, label.Color)
	}
}
