package activity

import (
	"sync"
	"time"
)

// PlayerState is the logical state of an animation player.
type PlayerState int

const (
	Stopped PlayerState = iota
	Playing
)

func (s PlayerState) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Player drives a looping keyframe animation. Frames are emitted through
// onFrame from the player's own goroutine; an empty frame clears the glyph.
//
// The logical state survives Detach, so a detached player resumes on Attach.
// Frame callbacks never overlap, and no frame follows the empty frame Stop
// emits until the player is started again.
type Player struct {
	mu       sync.Mutex
	emitMu   sync.Mutex
	state    PlayerState
	kind     Animation
	theme    Theme
	attached bool
	done     chan struct{}
	onFrame  func(frame string)
}

// NewPlayer creates a stopped, attached player.
func NewPlayer(onFrame func(frame string)) *Player {
	if onFrame == nil {
		onFrame = func(string) {}
	}
	return &Player{attached: true, onFrame: onFrame}
}

// Play starts the animation for kind. AnimationNone stops the player.
// Playing the same kind with an equal theme is a no-op.
func (p *Player) Play(kind Animation, theme Theme) {
	if kind == AnimationNone {
		p.Stop()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Playing && p.kind == kind && p.theme.Equal(theme) {
		return
	}
	p.state = Playing
	p.kind = kind
	p.theme = theme
	p.restartLocked()
}

// Stop halts the animation and forgets the current kind.
func (p *Player) Stop() {
	p.mu.Lock()
	p.state = Stopped
	p.kind = AnimationNone
	p.haltLocked()
	p.mu.Unlock()

	// A frame already past its check finishes before the glyph is cleared.
	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	p.onFrame("")
}

// Detach suspends frame emission without changing the logical state.
func (p *Player) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached = false
	p.haltLocked()
}

// Attach resumes a suspended animation if the player is still playing.
func (p *Player) Attach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.attached {
		return
	}
	p.attached = true
	if p.state == Playing {
		p.restartLocked()
	}
}

// State returns the logical state and, when playing, its animation.
func (p *Player) State() (PlayerState, Animation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.kind
}

// Running reports whether frames are currently being emitted.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done != nil
}

func (p *Player) haltLocked() {
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
}

func (p *Player) restartLocked() {
	p.haltLocked()
	if !p.attached {
		return
	}

	frames, d := p.theme.Frames(p.kind)
	if len(frames) == 0 {
		return
	}
	interval := d / time.Duration(len(frames))
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	done := make(chan struct{})
	p.done = done
	go p.loop(done, frames, interval)
}

func (p *Player) loop(done chan struct{}, frames []string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i := 0
	p.emit(done, frames[i])
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			i = (i + 1) % len(frames)
			p.emit(done, frames[i])
		}
	}
}

// emit drops frames from a loop that has been halted in the meantime.
func (p *Player) emit(done chan struct{}, frame string) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	select {
	case <-done:
		return
	default:
	}
	p.onFrame(frame)
}
