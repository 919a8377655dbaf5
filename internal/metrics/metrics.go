package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// IngestedRecordsTotal counts records persisted by the ingestion endpoints.
	IngestedRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "afa",
		Subsystem: "ingest",
		Name:      "records_total",
		Help:      "Total number of device records parsed and persisted, labeled by entity.",
	}, []string{"entity"})

	// ClassifiedMessagesTotal counts classified messages by assigned category.
	ClassifiedMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "afa",
		Subsystem: "classifier",
		Name:      "messages_total",
		Help:      "Total number of classified messages, labeled by category.",
	}, []string{"category"})

	// DeviceCommandDurationSeconds measures adb invocations.
	DeviceCommandDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "afa",
		Subsystem: "device",
		Name:      "command_duration_seconds",
		Help:      "Time spent running device shell commands, labeled by result.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"result"})

	// CorrelationLookupErrorsTotal counts per-number call-log lookups that failed.
	CorrelationLookupErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "afa",
		Subsystem: "analysis",
		Name:      "correlation_lookup_errors_total",
		Help:      "Total number of call-log lookups that failed during data correlation.",
	})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			IngestedRecordsTotal,
			ClassifiedMessagesTotal,
			DeviceCommandDurationSeconds,
			CorrelationLookupErrorsTotal,
		)
	})
}
