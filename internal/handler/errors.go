package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// URL and query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingURLParam   = "Missing %s"
	ErrMsgInvalidURLParam   = "Invalid %s"

	// Tournament operation error messages
	ErrMsgCreateTournamentFailed = "Failed to create tournament"
	ErrMsgListTournamentsFailed  = "Failed to list tournaments"
	ErrMsgGetDashboardFailed     = "Failed to load dashboard"
	ErrMsgGetRoundsFailed        = "Failed to load rounds"
	ErrMsgGetCurrentRoundFailed  = "Failed to load current round"
	ErrMsgRecordResultFailed     = "Failed to record result"
	ErrMsgStartFailed            = "Failed to start tournament"
	ErrMsgAdvanceRoundFailed     = "Failed to advance round"
	ErrMsgCloseRoundFailed       = "Failed to close round"
	ErrMsgResetFailed            = "Failed to reset tournament"
)

// Success messages for API responses
const (
	MsgTournamentStarted = "Tournament started"
	MsgRoundAdvanced     = "Round advanced"
	MsgRoundClosed       = "Round closed"
	MsgResultRecorded    = "Result recorded"
	MsgTournamentReset   = "Tournament reset"
)
