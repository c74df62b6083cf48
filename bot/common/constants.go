package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
)

// Betting constants
const (
	MinBetAmount = 1
)

// UI constants
const (
	MaxButtonsPerRow = 5
	MaxActionRows    = 5
	MaxSelectOptions = 25
	QualifierSlots   = 8
)

// Screen names recorded as the user's last visited screen
const (
	ScreenHome        = "home"
	ScreenBets        = "bets"
	ScreenBetsHistory = "bets-history"
	ScreenLeagues     = "leagues"
	ScreenTeam        = "team"
	ScreenSideBets    = "side-bets"
)
