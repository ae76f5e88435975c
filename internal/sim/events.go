package sim

import "time"

// EventKind classifies what a tick reported to the tracker.
type EventKind uint8

const (
	EventJump EventKind = iota
	EventObstaclePassed
	EventScore
	EventPowerUp
	EventCoin
	EventCombo
)

// Event is a single progress-relevant occurrence within a tick.
// Amount is the running score for EventScore and the currency earned for EventCoin.
// Each EventCoin is exactly one pickup.
type Event struct {
	Kind    EventKind
	PowerUp PowerUpKind
	Combo   ComboKind
	Amount  int
}

// RunSummary describes a finished run.
type RunSummary struct {
	Seed     int64
	Score    int
	Coins    int
	Stats    RunStats
	Ticks    uint64
	PlayTime time.Duration
	Biome    string
	Perfect  bool
	Classic  bool
}

// Tracker receives progress during the persistence step of a tick.
// Implementations persist what they need and report newly unlocked
// achievement ids.
type Tracker interface {
	Track(events []Event) (unlocked []string)
	FinishRun(run RunSummary) (newBest bool, unlocked []string)
}

type nopTracker struct{}

func (nopTracker) Track([]Event) []string                { return nil }
func (nopTracker) FinishRun(RunSummary) (bool, []string) { return false, nil }
