package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/bus"
	"github.com/matheus3301/wppstatus/internal/status"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/tui/keys"
	"github.com/matheus3301/wppstatus/internal/tui/ui"
	"github.com/matheus3301/wppstatus/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageChats = "chats"
	pageChat  = "chat"
	pageAuth  = "auth"

	chatPageSize    = 200
	refreshInterval = 5 * time.Second
)

// ChatSource lists the chats shown on the main page.
type ChatSource interface {
	ListChats(limit, offset int) ([]store.Chat, error)
}

// ActivitySource returns who is currently active in a chat.
type ActivitySource interface {
	Snapshot(chatID string) activity.Snapshot
}

// Pairer links the session to a phone.
type Pairer interface {
	IsLoggedIn() bool
	Pair(ctx context.Context, onCode func(code string)) error
}

// Deps are the collaborators the TUI needs. Pairer and Recorder may be nil.
type Deps struct {
	Session  string
	Bus      *bus.Bus
	Chats    ChatSource
	Activity ActivitySource
	Pairer   Pairer
	State    func() status.State
	Phrases  activity.Phrases
	Theme    activity.Theme
	Recorder activity.Recorder
	Logger   *zap.Logger
}

// App is the TUI shell: a chat list, a chat page with the activity bar and
// the pairing page.
type App struct {
	deps     Deps
	app      *tview.Application
	theme    *ui.Theme
	pages    *ui.Pages
	crumbs   *ui.Crumbs
	flash    *ui.Flash
	registry *keys.Registry

	statusBar *views.StatusBar
	chatList  *views.ChatList
	chatPage  *views.ChatPage
	authView  *views.AuthView

	// Owned by the UI goroutine.
	controller *activity.Controller
	openJID    string
	lastSnap   activity.Snapshot
	lastWidth  int

	ctx    context.Context
	cancel context.CancelFunc

	// Closed once the UI loop is gone; nothing drains tview's queue after.
	quit     chan struct{}
	quitOnce sync.Once
}

// NewApp builds the application without starting it.
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.State == nil {
		deps.State = func() status.State { return status.Booting }
	}
	theme := ui.DefaultTheme()
	flash := ui.NewFlash()

	a := &App{
		deps:      deps,
		app:       tview.NewApplication(),
		theme:     theme,
		pages:     ui.NewPages(),
		crumbs:    ui.NewCrumbs(theme),
		flash:     flash,
		registry:  keys.NewRegistry(),
		statusBar: views.NewStatusBar(theme, flash),
		chatList:  views.NewChatList(theme),
		authView:  views.NewAuthView(theme),
		quit:      make(chan struct{}),
	}
	// Frames arrive from the animation goroutine.
	a.chatPage = views.NewChatPage(theme, func() { a.queueDraw(func() {}) })

	a.statusBar.SetSession(deps.Session)
	a.statusBar.SetState(deps.State())
	a.setupBindings()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'q', Description: "quit", Visible: true,
		Handler: a.app.Stop,
	})
	a.registry.AddView(pageChats, &keys.Action{
		Key: tcell.KeyEnter, Label: "Enter", Description: "open", Visible: true,
		Handler: func() {
			if jid := a.chatList.SelectedChat(); jid != "" {
				a.openChat(jid)
			}
		},
	})
	a.registry.AddView(pageChats, &keys.Action{
		Key: tcell.KeyRune, Rune: 'r', Description: "refresh", Visible: true,
		Handler: a.loadChats,
	})
	a.registry.AddView(pageChat, &keys.Action{
		Key: tcell.KeyEscape, Label: "Esc", Description: "back", Visible: true,
		Handler: a.closeChat,
	})
}

func (a *App) setupLayout() {
	a.pages.AddPage(pageChats, a.chatList, true, false)
	a.pages.AddPage(pageChat, a.chatPage, true, false)
	a.pages.AddPage(pageAuth, a.authView, true, false)

	a.pages.SetOnChange(func(titles []string) {
		a.crumbs.Update(titles)
		a.statusBar.SetHints(a.registry.Hints(a.pages.Current()))
	})
	a.pages.Reset(pageChats, "chats")

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)
	a.app.SetRoot(root, true)
	a.app.SetFocus(a.chatList)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.registry.HandleEvent(a.pages.Current(), event) {
			return nil
		}
		return event
	})

	// Re-measure the label when the terminal width changes.
	a.app.SetBeforeDrawFunc(func(tcell.Screen) bool {
		if a.controller != nil {
			if w := a.width(); w != a.lastWidth {
				a.applyActivity(a.lastSnap)
			}
		}
		return false
	})
}

// Run starts the UI and blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	go a.consumeEvents()
	go func() {
		<-a.ctx.Done()
		a.app.Stop()
	}()

	if a.deps.Pairer != nil && !a.deps.Pairer.IsLoggedIn() {
		a.startPairing()
	} else {
		a.loadChats()
	}

	err := a.app.Run()
	a.shutdown()
	a.cancel()
	if a.controller != nil {
		a.controller.Close()
	}
	return err
}

// consumeEvents forwards bus events to the UI goroutine.
func (a *App) consumeEvents() {
	if a.deps.Bus == nil {
		<-a.ctx.Done()
		return
	}

	activityCh, unsubActivity := a.deps.Bus.Subscribe("activity.", 256)
	defer unsubActivity()
	storeCh, unsubStore := a.deps.Bus.Subscribe("store.", 16)
	defer unsubStore()
	sessionCh, unsubSession := a.deps.Bus.Subscribe("session.", 16)
	defer unsubSession()

	refresh := time.NewTicker(refreshInterval)
	defer refresh.Stop()
	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case evt := <-activityCh:
			if snap, ok := evt.Payload.(activity.Snapshot); ok {
				a.queue(func() { a.onSnapshot(snap) })
			}
		case <-storeCh:
			a.loadChats()
		case <-refresh.C:
			a.loadChats()
		case evt := <-sessionCh:
			a.onSessionEvent(evt)
		case <-clock.C:
			a.queueDraw(a.statusBar.Refresh)
		}
	}
}

func (a *App) onSessionEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindStatusChanged:
		change, ok := evt.Payload.(status.StatusChange)
		if !ok {
			return
		}
		a.queueDraw(func() {
			a.statusBar.SetState(change.To)
			if change.To == status.Error {
				a.flash.Warn("connection error")
			}
		})
	case bus.KindLoggedOut:
		a.queueDraw(func() { a.flash.Warn("logged out, restart to pair again") })
	}
}

// loadChats reads the chat list off the UI goroutine.
func (a *App) loadChats() {
	if a.deps.Chats == nil {
		return
	}
	go func() {
		chats, err := a.deps.Chats.ListChats(chatPageSize, 0)
		if err != nil {
			a.deps.Logger.Warn("list chats", zap.Error(err))
			a.queueDraw(func() { a.flash.Err(err) })
			return
		}
		a.queueDraw(func() { a.chatList.Update(chats) })
	}()
}

func (a *App) openChat(jid string) {
	chat, ok := a.chatList.Chat(jid)
	if !ok {
		return
	}
	if a.controller != nil {
		a.controller.Close()
	}

	title := chat.Name
	if title == "" {
		title = chat.JID
	}
	a.chatPage.Show(chat)
	a.pages.Push(pageChat, title)
	a.app.SetFocus(a.chatPage)

	bar := a.chatPage.Bar()
	bar.Attach()
	a.controller = activity.NewController(bar, a.deps.Phrases,
		activity.WithDispatcher(a.queueDraw),
		activity.WithRecorder(a.deps.Recorder),
		activity.WithLogger(a.deps.Logger.Named("activity")),
	)
	a.openJID = jid

	snap := activity.Snapshot{ChatID: jid}
	if a.deps.Activity != nil {
		snap = a.deps.Activity.Snapshot(jid)
	}
	a.onSnapshot(snap)
}

func (a *App) closeChat() {
	if a.controller != nil {
		a.controller.Close()
		a.controller = nil
	}
	a.chatPage.Bar().Detach()
	a.openJID = ""
	a.lastSnap = activity.Snapshot{}
	a.pages.Pop()
	a.app.SetFocus(a.chatList)
}

// onSnapshot runs on the UI goroutine.
func (a *App) onSnapshot(snap activity.Snapshot) {
	if a.controller == nil || snap.ChatID != a.openJID {
		return
	}
	a.chatPage.ShowParticipants(snap)
	a.applyActivity(snap)
}

func (a *App) applyActivity(snap activity.Snapshot) {
	a.lastSnap = snap
	a.lastWidth = a.width()
	a.controller.Apply(snap, a.lastWidth, a.deps.Theme, a.chatPage.SetActivityVisible)
}

func (a *App) width() int {
	_, _, w, _ := a.pages.GetInnerRect()
	return w
}

func (a *App) startPairing() {
	a.pages.Reset(pageAuth, "link device")
	a.app.SetFocus(a.authView)
	a.authView.ShowMessage("requesting a pairing code...")

	go func() {
		err := a.deps.Pairer.Pair(a.ctx, func(code string) {
			a.queueDraw(func() { a.authView.ShowQR(code) })
		})
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			a.deps.Logger.Warn("pairing failed", zap.Error(err))
			a.queueDraw(func() { a.authView.ShowMessage("pairing failed: " + err.Error()) })
			return
		}
		a.queueDraw(func() {
			a.flash.Info("device linked")
			a.pages.Reset(pageChats, "chats")
			a.app.SetFocus(a.chatList)
		})
		a.loadChats()
	}()
}

// queue runs fn on the UI goroutine unless the UI has shut down.
func (a *App) queue(fn func()) {
	select {
	case <-a.quit:
		return
	default:
	}
	a.app.QueueUpdate(fn)
}

// queueDraw is queue followed by a redraw.
func (a *App) queueDraw(fn func()) {
	select {
	case <-a.quit:
		return
	default:
	}
	a.app.QueueUpdateDraw(fn)
}

func (a *App) shutdown() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Stop shuts the UI down.
func (a *App) Stop() {
	a.shutdown()
	if a.cancel != nil {
		a.cancel()
	}
	a.app.Stop()
}
