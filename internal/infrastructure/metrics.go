package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics holds the Prometheus collectors for one ingest run
type RunMetrics struct {
	registry *prometheus.Registry

	RecordsRead    *prometheus.CounterVec
	RecordsWritten *prometheus.CounterVec
	FilesSkipped   *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	LastRun        prometheus.Gauge
}

// NewRunMetrics creates a fresh registry with all ingest collectors registered
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		RecordsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderetl",
			Name:      "records_read_total",
			Help:      "Records read from input files, by source",
		}, []string{"source"}),
		RecordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderetl",
			Name:      "records_written_total",
			Help:      "Deduplicated records written, by source",
		}, []string{"source"}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderetl",
			Name:      "files_skipped_total",
			Help:      "Input files skipped because of read or header errors",
		}, []string{"source", "reason"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orderetl",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last ingest run",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orderetl",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last ingest run finished",
		}),
	}

	m.registry.MustRegister(m.RecordsRead, m.RecordsWritten, m.FilesSkipped, m.RunDuration, m.LastRun)
	return m
}

// Registry exposes the underlying gatherer
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records the run duration and finish time
func (m *RunMetrics) ObserveRun(started, finished time.Time) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	m.LastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes all metrics in the node_exporter textfile format
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}
