package progress

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "default"

// Profile is the persisted progress of one player. It implements sim.Tracker.
// Writes are synchronous and best-effort: failures are logged, never returned.
type Profile struct {
	mu       sync.Mutex
	kv       KV
	name     string
	logger   *log.Logger
	stats    Stats
	best     int
	coins    int
	unlocked map[string]bool
	runScore int
}

var _ sim.Tracker = (*Profile)(nil)

// Load reads a profile from kv. Missing or unreadable keys fall back to
// first-run defaults with a warning.
func Load(kv KV, name string, logger *log.Logger) *Profile {
	if name == "" {
		name = DefaultProfile
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Profile{
		kv:       kv,
		name:     name,
		logger:   logger,
		unlocked: make(map[string]bool),
	}

	if v, ok := p.read(KeyBest); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.best = n
		} else {
			p.warnParse(KeyBest, err)
		}
	}
	if v, ok := p.read(KeyCoins); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.coins = n
		} else {
			p.warnParse(KeyCoins, err)
		}
	}
	if v, ok := p.read(KeyStats); ok {
		var s Stats
		if err := json.Unmarshal([]byte(v), &s); err == nil {
			p.stats = s
		} else {
			p.warnParse(KeyStats, err)
		}
	}
	if v, ok := p.read(KeyAchievements); ok {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err == nil {
			for _, id := range ids {
				p.unlocked[id] = true
			}
		} else {
			p.warnParse(KeyAchievements, err)
		}
	}
	if p.stats.HighScore < p.best {
		p.stats.HighScore = p.best
	}
	return p
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Best returns the best score.
func (p *Profile) Best() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.best
}

// Coins returns the coin balance.
func (p *Profile) Coins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coins
}

// Stats returns a copy of the lifetime counters.
func (p *Profile) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// IsUnlocked reports whether an achievement has been earned.
func (p *Profile) IsUnlocked(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unlocked[id]
}

// UnlockedIDs returns earned achievement ids in sorted order.
func (p *Profile) UnlockedIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unlockedIDs()
}

// Track folds a tick's events into the counters. Coins are written
// immediately; other counters are flushed when the run finishes.
func (p *Profile) Track(events []sim.Event) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	coinsChanged := false
	for _, e := range events {
		switch e.Kind {
		case sim.EventJump:
			p.stats.TotalJumps++
		case sim.EventObstaclePassed:
			p.stats.PipesCleared++
		case sim.EventScore:
			p.runScore = e.Amount
		case sim.EventPowerUp:
			p.stats.PowerUpsUsed++
			if e.PowerUp == sim.PowerUpShield {
				p.stats.ShieldActivations++
			}
		case sim.EventCoin:
			p.stats.CoinsCollected++
			p.coins += e.Amount
			coinsChanged = true
		}
	}

	ids, rewarded := p.checkAchievements()
	if coinsChanged || rewarded {
		p.writeInt(KeyCoins, p.coins)
	}
	return ids
}

// FinishRun records a finished run. The best key is written only when the
// run beats it.
func (p *Profile) FinishRun(run sim.RunSummary) (bool, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.runScore = run.Score
	p.stats.GamesPlayed++
	p.stats.CrashCount++
	p.stats.TotalPlayTime += run.PlayTime.Seconds()
	if run.Perfect {
		p.stats.PerfectRuns++
	}

	newBest := run.Score > p.best
	if newBest {
		p.best = run.Score
		p.stats.HighScore = run.Score
		p.writeInt(KeyBest, p.best)
	}

	ids, rewarded := p.checkAchievements()
	if rewarded {
		p.writeInt(KeyCoins, p.coins)
	}
	p.writeJSON(KeyStats, p.stats)
	p.runScore = 0

	p.logger.Debug("run finished", "profile", p.name, "score", run.Score, "best", p.best, "new_best", newBest)
	return newBest, ids
}

// checkAchievements unlocks, persists and rewards. Callers hold mu.
func (p *Profile) checkAchievements() (ids []string, rewarded bool) {
	fresh := CheckAchievements(p.stats, p.runScore, Catalog, p.unlocked)
	if len(fresh) == 0 {
		return nil, false
	}
	for _, a := range fresh {
		ids = append(ids, a.ID)
		if a.Reward > 0 {
			p.coins += a.Reward
			rewarded = true
		}
		p.logger.Info("achievement unlocked", "profile", p.name, "id", a.ID, "reward", a.Reward)
	}
	p.writeJSON(KeyAchievements, p.unlockedIDs())
	return ids, rewarded
}

func (p *Profile) unlockedIDs() []string {
	ids := make([]string, 0, len(p.unlocked))
	for id := range p.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Profile) read(name string) (string, bool) {
	v, ok, err := p.kv.Get(Key(p.name, name))
	if err != nil {
		p.logger.Warn("cannot read progress, using defaults", "key", Key(p.name, name), "err", err)
		return "", false
	}
	return v, ok
}

func (p *Profile) writeInt(name string, v int) {
	p.write(name, strconv.Itoa(v))
}

func (p *Profile) writeJSON(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("cannot encode progress", "key", Key(p.name, name), "err", err)
		return
	}
	p.write(name, string(data))
}

func (p *Profile) write(name, value string) {
	if err := p.kv.Set(Key(p.name, name), value); err != nil {
		p.logger.Warn("cannot persist progress", "key", Key(p.name, name), "err", err)
	}
}

func (p *Profile) warnParse(name string, err error) {
	p.logger.Warn("corrupt progress value, using default", "key", Key(p.name, name), "err", err)
}
