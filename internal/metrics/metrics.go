// Package metrics exposes engine activity as Prometheus metrics.
// Labels are bounded: game IDs come from the registry and reasons from a fixed set.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/coquette/internal/engine"
)

// Metrics holds the collectors on a private registry, so several engines
// (or tests) never collide on the global one.
type Metrics struct {
	reg *prometheus.Registry

	ticks        *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
	collisions   *prometheus.CounterVec
	uncollisions *prometheus.CounterVec
	purged       *prometheus.CounterVec
	entities     *prometheus.GaugeVec
	records      *prometheus.GaugeVec

	sessionsActive     prometheus.Gauge
	connectionRejected *prometheus.CounterVec
}

// New creates the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coquette_ticks_total",
			Help: "Completed engine ticks",
		}, []string{"game"}),
		tickDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coquette_tick_duration_seconds",
			Help:    "Time spent in one engine tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
		}, []string{"game"}),
		collisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coquette_collisions_total",
			Help: "Collision notifications by phase",
		}, []string{"game", "phase"}),
		uncollisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coquette_uncollisions_total",
			Help: "Entity pairs that separated",
		}, []string{"game"}),
		purged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coquette_records_purged_total",
			Help: "Collision records dropped because an entity was destroyed",
		}, []string{"game"}),
		entities: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "coquette_entities",
			Help: "Live entities after the last tick",
		}, []string{"game"}),
		records: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "coquette_collision_records",
			Help: "Active collision records after the last tick",
		}, []string{"game"}),
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "coquette_sessions_active",
			Help: "Currently running game sessions",
		}),
		connectionRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coquette_connection_rejected_total",
			Help: "SSH connections rejected",
		}, []string{"reason"}), // Bounded: "rate_limit", "max_sessions", "no_pty"
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observer returns an engine observer that records ticks under gameID.
func (m *Metrics) Observer(gameID string) engine.Observer {
	return gameObserver{m: m, game: gameID}
}

type gameObserver struct {
	m    *Metrics
	game string
}

func (o gameObserver) ObserveTick(r engine.TickReport) {
	m := o.m
	m.ticks.WithLabelValues(o.game).Inc()
	m.tickDuration.WithLabelValues(o.game).Observe(r.Duration.Seconds())
	m.collisions.WithLabelValues(o.game, "initial").Add(float64(r.Delta.Initial))
	m.collisions.WithLabelValues(o.game, "sustained").Add(float64(r.Delta.Sustained))
	m.uncollisions.WithLabelValues(o.game).Add(float64(r.Delta.Uncollisions))
	m.purged.WithLabelValues(o.game).Add(float64(r.Delta.Purged))
	m.entities.WithLabelValues(o.game).Set(float64(r.Entities))
	m.records.WithLabelValues(o.game).Set(float64(r.Records))
}

// SessionStarted increments the active session gauge.
func (m *Metrics) SessionStarted() { m.sessionsActive.Inc() }

// SessionEnded decrements the active session gauge.
func (m *Metrics) SessionEnded() { m.sessionsActive.Dec() }

// RecordConnectionRejected increments the rejection counter.
// reason must be one of: "rate_limit", "max_sessions", "no_pty".
func (m *Metrics) RecordConnectionRejected(reason string) {
	m.connectionRejected.WithLabelValues(reason).Inc()
}

// Handler serves /metrics and /health.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// Serve listens on addr until ctx is done. It returns nil after a clean shutdown.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return m.serve(ctx, ln, logger)
}

func (m *Metrics) serve(ctx context.Context, ln net.Listener, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("metrics server stopped")
	return nil
}
