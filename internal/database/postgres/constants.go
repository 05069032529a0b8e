package postgres

// Error messages
const (
	ErrMsgBeginTx          = "failed to begin transaction"
	ErrMsgCommitTx         = "failed to commit transaction"
	ErrMsgInsertTournament = "failed to insert tournament"
	ErrMsgGetTournament    = "failed to get tournament"
	ErrMsgListTournaments  = "failed to list tournaments"
	ErrMsgUpdateTournament = "failed to update tournament"
	ErrMsgClearTournament  = "failed to clear tournament state"
	ErrMsgCopyParticipants = "failed to copy participants"
	ErrMsgCopyRounds       = "failed to copy rounds"
	ErrMsgCopyStandings    = "failed to copy standings"
	ErrMsgCopyChallenges   = "failed to copy challenges"
	ErrMsgLoadParticipants = "failed to load participants"
	ErrMsgLoadRounds       = "failed to load rounds"
	ErrMsgLoadStandings    = "failed to load standings"
	ErrMsgLoadChallenges   = "failed to load challenges"
	ErrMsgGetPlayer        = "failed to get player"
	ErrMsgUpsertPlayer     = "failed to upsert player"
)

// Table names used with CopyFrom
const (
	tableParticipants = "tournament_participants"
	tableRounds       = "tournament_rounds"
	tableStandings    = "round_standings"
	tableChallenges   = "challenges"
)
