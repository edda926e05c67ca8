// Package metrics exposes Prometheus collectors for log sinks.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsTotal        *prometheus.CounterVec
	recordsDroppedTotal prometheus.Counter
	ioFailuresTotal     *prometheus.CounterVec
	openSinks           prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		recordsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anthrazit_records_total",
				Help: "Total number of records written to log files, labeled by severity.",
			},
			[]string{"severity"},
		)

		recordsDroppedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "anthrazit_records_dropped_total",
				Help: "Total number of debug records suppressed because debug output is disabled.",
			},
		)

		ioFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anthrazit_io_failures_total",
				Help: "Total number of log file I/O failures, labeled by operation.",
			},
			[]string{"op"},
		)

		openSinks = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "anthrazit_open_sinks",
				Help: "Number of log sinks currently holding an open file.",
			},
		)
	})
}

// ObserveRecord counts a record written at the given severity.
func ObserveRecord(severity string) {
	if recordsTotal == nil {
		return
	}
	recordsTotal.WithLabelValues(severity).Inc()
}

// ObserveDropped counts a suppressed debug record.
func ObserveDropped() {
	if recordsDroppedTotal == nil {
		return
	}
	recordsDroppedTotal.Inc()
}

// ObserveIOFailure counts a failed open, write or close.
func ObserveIOFailure(op string) {
	if ioFailuresTotal == nil {
		return
	}
	ioFailuresTotal.WithLabelValues(op).Inc()
}

// IncOpenSinks increments the open sinks gauge.
func IncOpenSinks() {
	if openSinks == nil {
		return
	}
	openSinks.Inc()
}

// DecOpenSinks decrements the open sinks gauge.
func DecOpenSinks() {
	if openSinks == nil {
		return
	}
	openSinks.Dec()
}
