package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for CommandsTotal.
const (
	OutcomeOK        = "ok"
	OutcomeServerErr = "server_error"
	OutcomeBadReply  = "bad_reply"
	OutcomeTransport = "transport_error"
	OutcomeRejected  = "rejected" // failed before any I/O
)

// Registry holds all client metrics.
type Registry struct {
	reg *prometheus.Registry

	// CommandsTotal counts commands by name and outcome.
	CommandsTotal *prometheus.CounterVec

	// CommandDuration observes wall time of the full
	// tokenize-encode-await-decode pipeline, by command name.
	CommandDuration *prometheus.HistogramVec

	// BytesWritten and BytesRead track request and reply volume.
	BytesWritten prometheus.Counter
	BytesRead    prometheus.Counter

	// ConnectsTotal counts dial attempts by result.
	ConnectsTotal *prometheus.CounterVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rediswire",
			Name:      "commands_total",
			Help:      "Commands executed, by command name and outcome.",
		}, []string{"command", "outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rediswire",
			Name:      "command_duration_seconds",
			Help:      "Wall time of one command round trip.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"command"}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rediswire",
			Name:      "bytes_written_total",
			Help:      "Request bytes written to the wire.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rediswire",
			Name:      "bytes_read_total",
			Help:      "Reply bytes read from the wire.",
		}),
		ConnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rediswire",
			Name:      "connects_total",
			Help:      "Connection attempts, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		r.CommandsTotal,
		r.CommandDuration,
		r.BytesWritten,
		r.BytesRead,
		r.ConnectsTotal,
	)
	return r
}

// ObserveCommand records one completed command round trip.
func (r *Registry) ObserveCommand(command, outcome string, d time.Duration, wrote, read int) {
	r.CommandsTotal.WithLabelValues(command, outcome).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
	r.BytesWritten.Add(float64(wrote))
	r.BytesRead.Add(float64(read))
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gather exposes the underlying gatherer, mainly for tests.
func (r *Registry) Gather() prometheus.Gatherer {
	return r.reg
}
