package progress

// Stats are lifetime counters for a profile.
type Stats struct {
	GamesPlayed       int     `json:"gamesPlayed"`
	HighScore         int     `json:"highScore"`
	CoinsCollected    int     `json:"coinsCollected"`
	PowerUpsUsed      int     `json:"powerUpsUsed"`
	ShieldActivations int     `json:"shieldActivations"`
	PipesCleared      int     `json:"pipesCleared"`
	TotalJumps        int     `json:"totalJumps"`
	TotalPlayTime     float64 `json:"totalPlayTime"` // seconds
	CrashCount        int     `json:"crashCount"`
	PerfectRuns       int     `json:"perfectRuns"`
}

// StatType selects the counter an achievement watches.
type StatType string

const (
	StatGamesPlayed StatType = "gamesPlayed"
	StatRunScore    StatType = "runScore"
	StatHighScore   StatType = "highScore"
	StatCoins       StatType = "coinsCollected"
	StatPowerUps    StatType = "powerUpsUsed"
	StatShields     StatType = "shieldActivations"
	StatPipes       StatType = "pipesCleared"
	StatJumps       StatType = "totalJumps"
	StatPlayTime    StatType = "totalPlayTime"
	StatCrashes     StatType = "crashCount"
	StatPerfectRuns StatType = "perfectRuns"
)

// Value returns the counter for t. runScore is the score of the run in progress.
func (s Stats) Value(t StatType, runScore int) int {
	switch t {
	case StatGamesPlayed:
		return s.GamesPlayed
	case StatRunScore:
		return runScore
	case StatHighScore:
		return s.HighScore
	case StatCoins:
		return s.CoinsCollected
	case StatPowerUps:
		return s.PowerUpsUsed
	case StatShields:
		return s.ShieldActivations
	case StatPipes:
		return s.PipesCleared
	case StatJumps:
		return s.TotalJumps
	case StatPlayTime:
		return int(s.TotalPlayTime)
	case StatCrashes:
		return s.CrashCount
	case StatPerfectRuns:
		return s.PerfectRuns
	default:
		return 0
	}
}
