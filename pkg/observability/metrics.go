package observability

import (
	"net/http"
	"time"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the server records.
type Metrics struct {
	Registry *prometheus.Registry

	Sessions      prometheus.Gauge
	Actions       *prometheus.CounterVec
	ShellCommands *prometheus.CounterVec
	Turns         *prometheus.CounterVec
	Completions   *prometheus.CounterVec
	Requests      *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tour_widget_sessions",
			Help: "Number of mounted widget sessions",
		}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_widget_actions_total",
			Help: "Widget controls applied, by action",
		}, []string{"action"}),
		ShellCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_shell_commands_total",
			Help: "Toy shell commands executed, by command",
		}, []string{"command"}),
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_turns_started_total",
			Help: "Script turns started, by script",
		}, []string{"script"}),
		Completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_scripts_completed_total",
			Help: "Scripts played to the end, by script",
		}, []string{"script"}),
		Requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tour_http_request_duration_seconds",
			Help:    "HTTP request latency, by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	m.Registry.MustRegister(
		m.Sessions, m.Actions, m.ShellCommands, m.Turns, m.Completions, m.Requests,
		collectors.NewGoCollector(),
	)
	return m
}

// PlaybackHooks records turn and completion counts.
func (m *Metrics) PlaybackHooks() domain.PlaybackHooks {
	return domain.PlaybackHooks{
		OnTurnStart: func(e *domain.PlaybackEvent) {
			m.Turns.WithLabelValues(e.ScriptID).Inc()
		},
		OnComplete: func(e *domain.PlaybackEvent) {
			m.Completions.WithLabelValues(e.ScriptID).Inc()
		},
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	m.Requests.WithLabelValues(route, status).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
