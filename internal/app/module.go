// Package app composes the session process: storage, the WhatsApp
// connection, presence tracking and the terminal UI.
package app

import (
	"context"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/bus"
	"github.com/matheus3301/wppstatus/internal/config"
	"github.com/matheus3301/wppstatus/internal/locale"
	"github.com/matheus3301/wppstatus/internal/lock"
	"github.com/matheus3301/wppstatus/internal/metrics"
	"github.com/matheus3301/wppstatus/internal/presence"
	"github.com/matheus3301/wppstatus/internal/session"
	"github.com/matheus3301/wppstatus/internal/status"
	"github.com/matheus3301/wppstatus/internal/store"
	intsync "github.com/matheus3301/wppstatus/internal/sync"
	"github.com/matheus3301/wppstatus/internal/tui"
	"github.com/matheus3301/wppstatus/internal/wa"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved session and configuration.
type Params struct {
	SessionName string
	Config      *config.Config
	Logger      *zap.Logger
}

// Module returns the fx module for one session.
func Module(p Params) fx.Option {
	return fx.Module("wppstatus",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideAdapter,
			provideSyncEngine,
			providePhrases,
			metrics.New,
			provideTracker,
			provideUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	l, err := lock.Acquire(session.LockPath(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired", zap.String("path", l.Path()))
	return l, nil
}

// provideStore takes the lock so the database is never opened by a second
// process.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := session.AppDBPath(p.SessionName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("store initialized",
		zap.String("path", dbPath),
		zap.Uint("version", result.Version),
		zap.Bool("migrated", result.Changed))
	return db, nil
}

func provideAdapter(p Params, _ *lock.Lock, logger *zap.Logger) (*wa.Adapter, error) {
	return wa.NewAdapter(context.Background(), session.SessionDBPath(p.SessionName), logger.Named("wa"))
}

func provideSyncEngine(db *store.DB, b *bus.Bus, adapter *wa.Adapter, logger *zap.Logger) *intsync.Engine {
	return intsync.NewEngine(db, b, adapter, logger.Named("sync"))
}

func providePhrases(p Params) (activity.Phrases, error) {
	return locale.New(p.Config.Locale)
}

func provideTracker(p Params, b *bus.Bus, db *store.DB, m *metrics.Metrics, logger *zap.Logger) *presence.Tracker {
	return presence.NewTracker(b, db, m, p.Config.PresenceTimeout, logger.Named("presence"))
}

func provideUI(p Params, b *bus.Bus, db *store.DB, tracker *presence.Tracker, adapter *wa.Adapter,
	machine *status.Machine, phrases activity.Phrases, m *metrics.Metrics, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Deps{
		Session:  p.SessionName,
		Bus:      b,
		Chats:    db,
		Activity: tracker,
		Pairer:   adapter,
		State:    machine.Current,
		Phrases:  phrases,
		Theme:    p.Config.ActivityTheme(),
		Recorder: m,
		Logger:   logger.Named("tui"),
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Params     Params
	Lock       *lock.Lock
	DB         *store.DB
	Bus        *bus.Bus
	Machine    *status.Machine
	Adapter    *wa.Adapter
	Engine     *intsync.Engine
	Tracker    *presence.Tracker
	Metrics    *metrics.Metrics
	UI         *tui.App
	Logger     *zap.Logger
}

func registerLifecycle(lp lifecycleParams) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := lp.Logger

	lp.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			lp.Engine.Start(ctx)
			lp.Tracker.Start(ctx)

			handler := wa.NewEventHandler(lp.Bus, lp.Machine, lp.Adapter, logger.Named("events"))
			lp.Adapter.RegisterEventHandler(handler.Handle)

			if addr := lp.Params.Config.MetricsAddr; addr != "" {
				go func() {
					if err := lp.Metrics.Serve(ctx, addr, logger); err != nil {
						logger.Error("metrics server", zap.Error(err))
					}
				}()
			}

			if lp.Adapter.IsLoggedIn() {
				_ = lp.Machine.Transition(status.Connecting)
				go func() {
					if err := lp.Adapter.Connect(); err != nil {
						logger.Error("connect failed", zap.Error(err))
						_ = lp.Machine.Transition(status.Error)
					}
				}()
			} else {
				logger.Info("no credentials found, pairing required")
				_ = lp.Machine.Transition(status.AuthRequired)
			}

			go func() {
				if err := lp.UI.Run(ctx); err != nil {
					logger.Error("ui stopped", zap.Error(err))
				}
				_ = lp.Shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			lp.UI.Stop()
			lp.Tracker.Stop()
			lp.Engine.Stop()
			lp.Adapter.Disconnect()
			if err := lp.Adapter.Close(); err != nil {
				logger.Warn("closing whatsapp store", zap.Error(err))
			}
			if err := lp.DB.Close(); err != nil {
				logger.Warn("closing store", zap.Error(err))
			}
			if err := lp.Lock.Release(); err != nil {
				logger.Warn("releasing lock", zap.Error(err))
			}
			logger.Info("session stopped")
			return nil
		},
	})
}
