package tournament

// Operation names used for logging and error metrics
const (
	OpCreate       = "create"
	OpStart        = "start"
	OpAdvanceRound = "advance_round"
	OpCloseRound   = "close_round"
	OpRecordResult = "record_result"
	OpReset        = "reset"
)

// DefaultSnapshotCacheSize bounds the number of tournaments kept in memory
const DefaultSnapshotCacheSize = 128

// MaxNameLength bounds tournament names
const MaxNameLength = 100

// Log messages
const (
	LogMsgTournamentCreated   = "Tournament created"
	LogMsgTournamentStarted   = "Tournament started"
	LogMsgRoundAdvanced       = "Round advanced"
	LogMsgRoundClosed         = "Round closed"
	LogMsgResultRecorded      = "Challenge result recorded"
	LogMsgTournamentReset     = "Tournament reset"
	LogMsgTournamentOver      = "Tournament finished"
	LogMsgPublishFailed       = "Failed to publish tournament event"
	LogMsgProfileLookupFailed = "Failed to load player profiles for dashboard"
)
