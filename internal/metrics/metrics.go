package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prefix is prepended to every metric name.
const Prefix = "smetaseed_"

// Operation names a kind of store write.
type Operation string

// Store write operations.
const (
	OperationInsert Operation = "insert"
	OperationUpsert Operation = "upsert"
)

// Metrics records what a seed run wrote and how long each step took. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	rowsWritten  *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	stepErrors   *prometheus.CounterVec
	lastSuccess  prometheus.Gauge
}

// New creates Metrics registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: Prefix + "rows_written_total",
			Help: "Number of rows written to the store grouped by table and operation",
		}, []string{"table", "operation"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    Prefix + "step_duration_seconds",
			Help:    "Time taken by each seed step",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"step"}),
		stepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: Prefix + "step_errors_total",
			Help: "Number of failed seed steps grouped by step",
		}, []string{"step"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: Prefix + "last_success_timestamp_seconds",
			Help: "Unix time of the last seed run that completed without error",
		}),
	}
	m.registry.MustRegister(m.rowsWritten, m.stepDuration, m.stepErrors, m.lastSuccess)
	return m
}

// Registry exposes the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRows adds n written rows for table.
func (m *Metrics) RecordRows(table string, op Operation, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsWritten.With(prometheus.Labels{"table": table, "operation": string(op)}).Add(float64(n))
}

// RecordStep observes the duration of a step and counts it as failed when
// err is non-nil.
func (m *Metrics) RecordStep(step string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stepDuration.With(prometheus.Labels{"step": step}).Observe(d.Seconds())
	if err != nil {
		m.stepErrors.With(prometheus.Labels{"step": step}).Inc()
	}
}

// RecordSuccess marks the run as completed at t.
func (m *Metrics) RecordSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics in the Prometheus text format to path,
// for pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
