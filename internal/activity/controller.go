package activity

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Surface is the presentation target driven by a Controller. The controller
// never draws; it only calls these methods, always from the dispatcher's
// delivery context except for SetBackground and StopAnimation which run on
// the caller's.
type Surface interface {
	SetBackground(c tcell.Color)
	SetLabel(l *Label, leftInset int)
	PlayAnimation(a Animation, theme Theme)
	StopAnimation()
	Size() (width, height int)
}

// Dispatcher runs fn on the single delivery context (e.g. the UI goroutine).
type Dispatcher func(fn func())

// Recorder observes controller activity. Used for metrics.
type Recorder interface {
	Updated()
	Superseded()
	Delivered(a Animation)
}

// SummarizeFunc computes the presentation for a snapshot.
type SummarizeFunc func(snap Snapshot, width int, theme Theme, phrases Phrases) (Animation, *Label)

// Option configures a Controller.
type Option func(*Controller)

// WithDispatcher sets how results are delivered to the surface. The default
// delivers inline on the summarizing goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) { c.dispatch = d }
}

// WithLogger sets the controller logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder attaches a metrics recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithSummarizer replaces Summarize.
func WithSummarizer(fn SummarizeFunc) Option {
	return func(c *Controller) { c.summarize = fn }
}

// Controller owns the single in-flight summarization for one chat and applies
// only the most recently requested result to its surface.
type Controller struct {
	surface   Surface
	phrases   Phrases
	dispatch  Dispatcher
	summarize SummarizeFunc
	recorder  Recorder
	logger    *zap.Logger

	active atomic.Bool
	gen    atomic.Uint64

	mu        sync.Mutex
	cancel    context.CancelFunc
	last      Animation
	lastTheme Theme
	delivered bool

	closeOnce sync.Once
}

// NewController creates a controller presenting on surface.
func NewController(surface Surface, phrases Phrases, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		phrases:   phrases,
		dispatch:  func(fn func()) { fn() },
		summarize: Summarize,
		recorder:  nopRecorder{},
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// IsActive reports whether the last applied snapshot had any activity.
func (c *Controller) IsActive() bool {
	return c.active.Load()
}

// Apply presents snap. Any earlier request still in flight is superseded and
// its result discarded. onLayoutChanged is called after delivery with whether
// a label is now shown.
func (c *Controller) Apply(snap Snapshot, width int, theme Theme, onLayoutChanged func(hasLabel bool)) {
	c.active.Store(!snap.Empty())
	c.surface.SetBackground(theme.Background)

	if width <= 0 {
		width, _ = c.surface.Size()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.recorder.Superseded()
	}
	c.cancel = cancel
	gen := c.gen.Add(1)
	c.mu.Unlock()

	c.recorder.Updated()
	c.logger.Debug("activity update",
		zap.String("chat", snap.ChatID),
		zap.Int("participants", len(snap.Activities)),
		zap.Uint64("gen", gen))

	go c.run(ctx, gen, snap, width, theme, onLayoutChanged)
}

func (c *Controller) run(ctx context.Context, gen uint64, snap Snapshot, width int, theme Theme, onLayoutChanged func(bool)) {
	if ctx.Err() != nil {
		return
	}
	anim, label := c.summarize(snap, width, theme, c.phrases)
	if ctx.Err() != nil {
		return
	}

	c.dispatch(func() {
		if !c.deliver(gen, anim, label, theme) {
			return
		}
		if onLayoutChanged != nil {
			onLayoutChanged(label != nil)
		}
	})
}

func (c *Controller) deliver(gen uint64, anim Animation, label *Label, theme Theme) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen.Load() != gen {
		c.logger.Debug("discarding superseded activity result", zap.Uint64("gen", gen))
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.surface.SetLabel(label, GlyphWidth)
	if anim == AnimationNone {
		c.surface.StopAnimation()
	} else {
		c.surface.PlayAnimation(anim, theme)
	}
	c.last = anim
	c.lastTheme = theme
	c.delivered = true
	c.recorder.Delivered(anim)
	return true
}

// Last returns the most recently delivered animation and theme.
func (c *Controller) Last() (Animation, Theme, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.lastTheme, c.delivered
}

// Clean cancels any in-flight update and stops the animation. IsActive keeps
// reflecting the last applied snapshot.
func (c *Controller) Clean() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen.Add(1)
	c.last = AnimationNone
	c.mu.Unlock()

	c.surface.StopAnimation()
}

// Close releases the controller. It is safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(c.Clean)
}

type nopRecorder struct{}

func (nopRecorder) Updated()            {}
func (nopRecorder) Superseded()         {}
func (nopRecorder) Delivered(Animation) {}
