package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// End reasons for StreamsEnded.
const (
	ReasonEnd     = "end"
	ReasonClose   = "close"
	ReasonCleanup = "cleanup"
)

var (
	// Stream lifecycle
	StreamsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plstream_streams_created_total",
		Help: "Total number of streams created",
	})
	CreateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plstream_stream_create_failures_total",
		Help: "Total number of stream creations rejected by the library",
	})
	StreamsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plstream_streams_ended_total",
		Help: "Total number of streams ended, by what ended them",
	}, []string{"reason"})
	StreamsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "plstream_streams_live",
		Help: "Current number of live streams",
	})

	// Library lock
	LockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plstream_lock_wait_seconds",
		Help:    "Time spent waiting for the library lock",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1us to ~0.26s
	})

	// Devices
	PagesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plstream_pages_written_total",
		Help: "Total number of pages finished by output devices",
	}, []string{"device"})
	DeviceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plstream_device_errors_total",
		Help: "Total number of errors returned by output devices",
	}, []string{"device"})
)
