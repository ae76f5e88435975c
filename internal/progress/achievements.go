package progress

// Achievement is a catalog entry. Unlocks are tracked separately by id.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Stat        StatType
	Threshold   int
	Reward      int // coins credited on unlock
}

// Catalog is the fixed list of achievements in display order.
var Catalog = []Achievement{
	{ID: "first_flight", Title: "First Flight", Description: "Finish your first run", Stat: StatGamesPlayed, Threshold: 1, Reward: 10},
	{ID: "score_10", Title: "Getting the Hang", Description: "Score 10 in a single run", Stat: StatRunScore, Threshold: 10, Reward: 20},
	{ID: "score_25", Title: "Sky Runner", Description: "Score 25 in a single run", Stat: StatRunScore, Threshold: 25, Reward: 50},
	{ID: "score_50", Title: "Ace Pilot", Description: "Score 50 in a single run", Stat: StatRunScore, Threshold: 50, Reward: 100},
	{ID: "score_100", Title: "Legend of the Skies", Description: "Score 100 in a single run", Stat: StatRunScore, Threshold: 100, Reward: 250},
	{ID: "coins_50", Title: "Pocket Change", Description: "Collect 50 coins", Stat: StatCoins, Threshold: 50},
	{ID: "coins_500", Title: "Treasure Hunter", Description: "Collect 500 coins", Stat: StatCoins, Threshold: 500, Reward: 100},
	{ID: "power_user", Title: "Power User", Description: "Use 25 power-ups", Stat: StatPowerUps, Threshold: 25, Reward: 50},
	{ID: "shield_master", Title: "Shield Master", Description: "Activate 10 shields", Stat: StatShields, Threshold: 10, Reward: 50},
	{ID: "pipe_cleaner", Title: "Pipe Cleaner", Description: "Clear 250 obstacles", Stat: StatPipes, Threshold: 250, Reward: 75},
	{ID: "jumper", Title: "Frequent Flapper", Description: "Flap 1000 times", Stat: StatJumps, Threshold: 1000, Reward: 25},
	{ID: "marathon", Title: "Marathon", Description: "Play for 30 minutes in total", Stat: StatPlayTime, Threshold: 1800, Reward: 100},
	{ID: "crash_test", Title: "Crash Test Dummy", Description: "Crash 50 times", Stat: StatCrashes, Threshold: 50, Reward: 25},
	{ID: "perfectionist", Title: "Perfectionist", Description: "Score 25 without touching a power-up", Stat: StatPerfectRuns, Threshold: 1, Reward: 150},
}

// Lookup finds a catalog entry by id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// CheckAchievements unlocks every locked entry whose stat has reached its
// threshold. It adds the new ids to unlocked and returns the new entries.
// Entries already in unlocked are never removed.
func CheckAchievements(stats Stats, runScore int, catalog []Achievement, unlocked map[string]bool) []Achievement {
	var fresh []Achievement
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		if stats.Value(a.Stat, runScore) >= a.Threshold {
			unlocked[a.ID] = true
			fresh = append(fresh, a)
		}
	}
	return fresh
}
