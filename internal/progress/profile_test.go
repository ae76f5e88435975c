package progress

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

func TestLoadFirstRunDefaults(t *testing.T) {
	p := Load(NewMemoryKV(), "", nil)
	assert.Equal(t, DefaultProfile, p.Name())
	assert.Zero(t, p.Best())
	assert.Zero(t, p.Coins())
	assert.Equal(t, Stats{}, p.Stats())
	assert.Empty(t, p.UnlockedIDs())
}

func TestLoadCorruptValuesFallBack(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key("bob", KeyBest), "not a number"))
	require.NoError(t, kv.Set(Key("bob", KeyCoins), "12"))
	require.NoError(t, kv.Set(Key("bob", KeyStats), "{broken"))
	require.NoError(t, kv.Set(Key("bob", KeyAchievements), `["jumper"]`))

	p := Load(kv, "bob", nil)
	assert.Zero(t, p.Best())
	assert.Equal(t, 12, p.Coins())
	assert.Equal(t, Stats{}, p.Stats())
	assert.True(t, p.IsUnlocked("jumper"))
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error         { return errors.New("disk on fire") }

func TestPersistenceFailuresAreNotFatal(t *testing.T) {
	p := Load(failingKV{}, "x", nil)
	p.Track([]sim.Event{{Kind: sim.EventCoin, Amount: 3}})
	newBest, _ := p.FinishRun(sim.RunSummary{Score: 4})
	assert.True(t, newBest)
	assert.Equal(t, 4, p.Best())
}

func TestCoinsWrittenImmediately(t *testing.T) {
	kv := NewMemoryKV()
	p := Load(kv, "ann", nil)

	p.Track([]sim.Event{{Kind: sim.EventCoin, Amount: 15}})

	v, ok, err := kv.Get(Key("ann", KeyCoins))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "15", v)
	assert.Equal(t, 1, p.Stats().CoinsCollected)
}

func TestCoinsCollectedCountsPickupsNotValue(t *testing.T) {
	p := Load(NewMemoryKV(), "ann", nil)

	p.Track([]sim.Event{
		{Kind: sim.EventCoin, Amount: 5},
		{Kind: sim.EventCoin, Amount: 3},
		{Kind: sim.EventCoin, Amount: 1},
	})

	assert.Equal(t, 3, p.Stats().CoinsCollected)
	assert.Equal(t, 9, p.Coins())
}

func TestFinishRunWritesBestOnlyWhenBeaten(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key("ann", KeyBest), "20"))
	p := Load(kv, "ann", nil)

	newBest, _ := p.FinishRun(sim.RunSummary{Score: 7, PlayTime: 3 * time.Second})
	assert.False(t, newBest)
	v, _, _ := kv.Get(Key("ann", KeyBest))
	assert.Equal(t, "20", v)

	newBest, _ = p.FinishRun(sim.RunSummary{Score: 21, PlayTime: 4 * time.Second})
	assert.True(t, newBest)
	v, _, _ = kv.Get(Key("ann", KeyBest))
	assert.Equal(t, "21", v)

	var stats Stats
	raw, ok, _ := kv.Get(Key("ann", KeyStats))
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), &stats))
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 2, stats.CrashCount)
	assert.Equal(t, 21, stats.HighScore)
	assert.InDelta(t, 7.0, stats.TotalPlayTime, 1e-9)
}

func TestAchievementsPersistAndReward(t *testing.T) {
	kv := NewMemoryKV()
	p := Load(kv, "ann", nil)

	ids := p.Track([]sim.Event{{Kind: sim.EventScore, Amount: 10}})
	assert.Equal(t, []string{"score_10"}, ids)
	assert.Equal(t, 20, p.Coins(), "reward credited")

	raw, ok, _ := kv.Get(Key("ann", KeyAchievements))
	require.True(t, ok)
	assert.JSONEq(t, `["score_10"]`, raw)

	_, ids = p.FinishRun(sim.RunSummary{Score: 10, Perfect: false})
	assert.Equal(t, []string{"first_flight"}, ids)

	// A reload sees the same unlocks.
	again := Load(kv, "ann", nil)
	assert.True(t, again.IsUnlocked("score_10"))
	assert.True(t, again.IsUnlocked("first_flight"))
	assert.Equal(t, 30, again.Coins())
}

func TestPerfectRunCounted(t *testing.T) {
	p := Load(NewMemoryKV(), "ann", nil)
	_, ids := p.FinishRun(sim.RunSummary{Score: 25, Perfect: true})
	assert.Contains(t, ids, "perfectionist")
	assert.Equal(t, 1, p.Stats().PerfectRuns)
}

func TestProfilesAreNamespaced(t *testing.T) {
	kv := NewMemoryKV()
	a := Load(kv, "a", nil)
	a.FinishRun(sim.RunSummary{Score: 5})

	b := Load(kv, "b", nil)
	assert.Zero(t, b.Best())
	keys, err := kv.Keys("")
	require.NoError(t, err)
	assert.Contains(t, keys, "flappy/a/best")
}

func TestResetRemovesOnlyThatProfile(t *testing.T) {
	kv := NewMemoryKV()
	a := Load(kv, "a", nil)
	a.Track([]sim.Event{{Kind: sim.EventCoin, Amount: 4}})
	a.FinishRun(sim.RunSummary{Score: 12})
	ab := Load(kv, "ab", nil)
	ab.FinishRun(sim.RunSummary{Score: 3})

	n, err := Reset(kv, "a")
	require.NoError(t, err)
	assert.Positive(t, n)

	left, err := kv.Keys("flappy/a/")
	require.NoError(t, err)
	assert.Empty(t, left)

	fresh := Load(kv, "a", nil)
	assert.Zero(t, fresh.Best())
	assert.Zero(t, fresh.Coins())
	assert.Empty(t, fresh.UnlockedIDs())
	assert.Equal(t, 3, Load(kv, "ab", nil).Best())
}
