package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Tournament metric names
const (
	MetricNameTournamentsCreated   = "tournaments_created_total"
	MetricNameTournamentsStarted   = "tournaments_started_total"
	MetricNameTournamentsFinished  = "tournaments_finished_total"
	MetricNameTournamentResets     = "tournament_resets_total"
	MetricNameRoundsAdvanced       = "rounds_advanced_total"
	MetricNameRoundsClosed         = "rounds_closed_total"
	MetricNameResultsRecorded      = "challenge_results_recorded_total"
	MetricNameEliminations         = "participant_eliminations_total"
	MetricNameOperationErrors      = "tournament_operation_errors_total"
	MetricNameSnapshotCacheLookups = "tournament_snapshot_cache_lookups_total"
)

// Player directory metric names
const (
	MetricNameDirectoryCacheHits   = "player_directory_cache_hits_total"
	MetricNameDirectoryCacheMisses = "player_directory_cache_misses_total"
	MetricNameDirectoryCacheSize   = "player_directory_cache_entries"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Tournament metric help text
const (
	HelpTextTournamentsCreated   = "Total number of tournaments created"
	HelpTextTournamentsStarted   = "Total number of tournaments started"
	HelpTextTournamentsFinished  = "Total number of tournaments that produced a final standing"
	HelpTextTournamentResets     = "Total number of tournament resets"
	HelpTextRoundsAdvanced       = "Total number of rounds materialized by the bracket engine"
	HelpTextRoundsClosed         = "Total number of rounds closed"
	HelpTextResultsRecorded      = "Total number of challenge results recorded"
	HelpTextEliminations         = "Total number of participants eliminated"
	HelpTextOperationErrors      = "Total number of rejected or failed tournament operations"
	HelpTextSnapshotCacheLookups = "Tournament snapshot cache lookups by result"
)

// Player directory metric help text
const (
	HelpTextDirectoryCacheHits   = "Total number of player profile lookups served from cache"
	HelpTextDirectoryCacheMisses = "Total number of player profile lookups that missed the cache"
	HelpTextDirectoryCacheSize   = "Current number of cached player profiles"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelBranch    = "branch"
	LabelOperation = "operation"
	LabelReason    = "reason"
	LabelResult    = "result"
)

// Snapshot cache lookup results
const (
	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
