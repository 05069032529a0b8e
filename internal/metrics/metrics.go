package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Tournament Metrics
var (
	TournamentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTournamentsCreated,
			Help: HelpTextTournamentsCreated,
		},
	)

	TournamentsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTournamentsStarted,
			Help: HelpTextTournamentsStarted,
		},
	)

	TournamentsFinished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTournamentsFinished,
			Help: HelpTextTournamentsFinished,
		},
	)

	TournamentResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTournamentResets,
			Help: HelpTextTournamentResets,
		},
	)

	RoundsAdvanced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsAdvanced,
			Help: HelpTextRoundsAdvanced,
		},
	)

	RoundsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsClosed,
			Help: HelpTextRoundsClosed,
		},
	)

	ResultsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResultsRecorded,
			Help: HelpTextResultsRecorded,
		},
		[]string{LabelBranch},
	)

	Eliminations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEliminations,
			Help: HelpTextEliminations,
		},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOperationErrors,
			Help: HelpTextOperationErrors,
		},
		[]string{LabelOperation, LabelReason},
	)

	SnapshotCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotCacheLookups,
			Help: HelpTextSnapshotCacheLookups,
		},
		[]string{LabelResult},
	)
)
