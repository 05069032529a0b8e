package discord

// Embed colors
const (
	ColorRound    = 0x3498db // Blue
	ColorChampion = 0xf1c40f // Gold
	ColorElim     = 0xe74c3c // Red
	ColorReset    = 0x95a5a6 // Grey
)

// FooterGrandChallenge is the footer on every announcement
const FooterGrandChallenge = "GrandChallenge"

// Log messages
const (
	LogMsgAnnouncementSent   = "Discord announcement sent"
	LogMsgAnnouncementFailed = "Failed to send Discord announcement"
	LogMsgPayloadUnexpected  = "Unexpected event payload for announcement"
)
