package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Catalog {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.Positive(t, a.Threshold, a.ID)
	}
}

func TestCheckAchievements(t *testing.T) {
	unlocked := map[string]bool{}

	fresh := CheckAchievements(Stats{}, 0, Catalog, unlocked)
	assert.Empty(t, fresh)

	fresh = CheckAchievements(Stats{GamesPlayed: 1}, 12, Catalog, unlocked)
	ids := make([]string, 0, len(fresh))
	for _, a := range fresh {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"first_flight", "score_10"}, ids)

	// Already unlocked entries are not returned again.
	fresh = CheckAchievements(Stats{GamesPlayed: 2}, 12, Catalog, unlocked)
	assert.Empty(t, fresh)
}

func TestUnlocksAreMonotonic(t *testing.T) {
	unlocked := map[string]bool{}
	CheckAchievements(Stats{CrashCount: 60}, 0, Catalog, unlocked)
	assert.True(t, unlocked["crash_test"])

	// Stats going backwards never relock.
	CheckAchievements(Stats{}, 0, Catalog, unlocked)
	assert.True(t, unlocked["crash_test"])
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("perfectionist")
	assert.True(t, ok)
	assert.Equal(t, StatPerfectRuns, a.Stat)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
