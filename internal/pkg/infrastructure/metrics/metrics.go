package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "hubwatch_"

var (
	registerOnce sync.Once

	detectionCycles        prometheus.Counter
	detectionCycleDuration prometheus.Histogram
	detectionFailures      *prometheus.CounterVec
	alertsRaised           *prometheus.CounterVec
	recordedOccurrences    *prometheus.CounterVec
	apiRequests            *prometheus.CounterVec
)

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		detectionCycles = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "detection_cycles_total",
				Help: "Total completed detection cycles",
			},
		)
		detectionCycleDuration = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "detection_cycle_duration_seconds",
				Help:    "Detection cycle duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		detectionFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "detection_failures_total",
				Help: "Failed (event type, hub) evaluations by stage",
			},
			[]string{"stage"},
		)
		alertsRaised = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_total",
				Help: "Alerts raised by hub and event type",
			},
			[]string{"hub", "event_type"},
		)
		recordedOccurrences = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "recorded_occurrences_total",
				Help: "Occurrences recorded by event type",
			},
			[]string{"event_type"},
		)
		apiRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "api_requests_total",
				Help: "Reader API requests by route and status code",
			},
			[]string{"route", "code"},
		)

		prometheus.MustRegister(
			detectionCycles,
			detectionCycleDuration,
			detectionFailures,
			alertsRaised,
			recordedOccurrences,
			apiRequests,
		)
	})
}

func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

func ObserveDetectionCycle(duration time.Duration) {
	Init()
	detectionCycles.Inc()
	detectionCycleDuration.Observe(duration.Seconds())
}

func IncDetectionFailure(stage string) {
	Init()
	detectionFailures.WithLabelValues(stage).Inc()
}

func IncAlert(hub, eventType string) {
	Init()
	alertsRaised.WithLabelValues(hub, eventType).Inc()
}

func IncOccurrence(eventType string) {
	Init()
	recordedOccurrences.WithLabelValues(eventType).Inc()
}

func IncAPIRequest(route string, code int) {
	Init()
	apiRequests.WithLabelValues(route, http.StatusText(code)).Inc()
}
