package core

import "time"

// CueName identifies a discrete audio event raised by a game.
type CueName string

// Cue names understood by the audio collaborator.
const (
	CueJump        CueName = "jump"
	CueScore       CueName = "score"
	CueHit         CueName = "hit"
	CuePowerUp     CueName = "powerup"
	CueCoin        CueName = "coin"
	CueAchievement CueName = "achievement"
)

// Cue is a fire-and-forget sound request. Freq and Duration are hints;
// the audio side decides how (and whether) to play it.
type Cue struct {
	Name     CueName
	Freq     float64       // Base frequency in Hz
	Duration time.Duration // Suggested length
}

// NewCue builds a cue with the default hints for the given name.
func NewCue(name CueName) Cue {
	switch name {
	case CueJump:
		return Cue{Name: name, Freq: 440, Duration: 80 * time.Millisecond}
	case CueScore:
		return Cue{Name: name, Freq: 880, Duration: 100 * time.Millisecond}
	case CueHit:
		return Cue{Name: name, Freq: 110, Duration: 300 * time.Millisecond}
	case CuePowerUp:
		return Cue{Name: name, Freq: 660, Duration: 200 * time.Millisecond}
	case CueCoin:
		return Cue{Name: name, Freq: 1320, Duration: 70 * time.Millisecond}
	case CueAchievement:
		return Cue{Name: name, Freq: 523, Duration: 400 * time.Millisecond}
	default:
		return Cue{Name: name, Freq: 440, Duration: 100 * time.Millisecond}
	}
}
