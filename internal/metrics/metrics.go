// Package metrics exposes activity and presence counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/presence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "wppstatus"

// Metrics implements activity.Recorder and presence.Observer on a private
// registry.
type Metrics struct {
	registry   *prometheus.Registry
	updates    prometheus.Counter
	superseded prometheus.Counter
	deliveries *prometheus.CounterVec
	presence   *prometheus.CounterVec
}

var (
	_ activity.Recorder = (*Metrics)(nil)
	_ presence.Observer = (*Metrics)(nil)
)

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		updates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_updates_total",
			Help:      "Activity snapshots applied to an activity bar.",
		}),
		superseded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_superseded_total",
			Help:      "Summaries cancelled before delivery by a newer snapshot.",
		}),
		deliveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_deliveries_total",
			Help:      "Summaries delivered to an activity bar, by animation.",
		}, []string{"animation"}),
		presence: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presence_updates_total",
			Help:      "Chat presence updates received, by activity kind.",
		}, []string{"kind"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Updated implements activity.Recorder.
func (m *Metrics) Updated() { m.updates.Inc() }

// Superseded implements activity.Recorder.
func (m *Metrics) Superseded() { m.superseded.Inc() }

// Delivered implements activity.Recorder.
func (m *Metrics) Delivered(a activity.Animation) {
	m.deliveries.WithLabelValues(a.String()).Inc()
}

// ObservePresence implements presence.Observer. Inactive updates are
// counted under the "inactive" kind.
func (m *Metrics) ObservePresence(u presence.Update) {
	kind := "inactive"
	if u.Active {
		kind = string(u.Kind)
	}
	m.presence.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
