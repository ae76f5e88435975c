package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// fixedRand always returns the same values, so every rate check passes
// when f is zero.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

const frame = time.Second / 60

func testState() *State {
	cfg := config.DefaultFlappyConfig()
	w, err := WorldFromConfig(cfg.World)
	if err != nil {
		panic(err)
	}
	return &State{
		World:  w,
		Player: NewPlayer(cfg.Player.X, 240, cfg.Player.Radius),
	}
}

func newTestSession(t *testing.T, mutate func(*Options)) *Session {
	t.Helper()
	opts := Options{
		Config:   config.DefaultFlappyConfig(),
		Seed:     42,
		TickRate: 60,
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s
}

func tickN(s *Session, n int, in Input) {
	for i := 0; i < n; i++ {
		s.Tick(frame, in)
	}
}
