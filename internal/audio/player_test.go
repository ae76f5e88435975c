package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

type fakeOutput struct {
	initErr error
	block   chan struct{}

	mu     sync.Mutex
	played int
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	return f.initErr
}

func (f *fakeOutput) Play(beep.Streamer) {
	f.mu.Lock()
	f.played++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeOutput) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.played
}

func TestPlayerInitFailureDisables(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	p := New(Options{Output: out})
	defer p.Close()

	err := p.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAudioUnavailable)
	assert.False(t, p.Enabled())
	assert.False(t, p.Play(core.NewCue(core.CueJump)))
	assert.Equal(t, 0, out.count())
}

func TestPlayerMuted(t *testing.T) {
	out := &fakeOutput{}
	p := New(Options{Output: out, Muted: true})
	defer p.Close()

	require.NoError(t, p.Start())
	assert.False(t, p.Enabled())
	assert.False(t, p.Play(core.NewCue(core.CueScore)))
}

func TestPlayerPlaysCues(t *testing.T) {
	out := &fakeOutput{}
	p := New(Options{Output: out})
	require.NoError(t, p.Start())
	defer p.Close()

	p.PlayAll([]core.Cue{core.NewCue(core.CueJump), core.NewCue(core.CueCoin)})
	assert.Eventually(t, func() bool { return out.count() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestPlayerDropsWhenQueueFull(t *testing.T) {
	out := &fakeOutput{block: make(chan struct{})}
	p := New(Options{Output: out})
	require.NoError(t, p.Start())

	require.True(t, p.Play(core.NewCue(core.CueHit)))
	// Wait until the consumer is stuck inside Play so the queue only fills.
	require.Eventually(t, func() bool { return out.count() == 1 }, time.Second, time.Millisecond)

	accepted := 0
	for i := 0; i < queueSize+10; i++ {
		if p.Play(core.NewCue(core.CueScore)) {
			accepted++
		}
	}
	assert.Equal(t, queueSize, accepted)
	assert.Equal(t, int64(10), p.Dropped())

	close(out.block)
	p.Close()
	assert.False(t, p.Enabled())
}

func TestPlayerCloseIdempotent(t *testing.T) {
	p := New(Options{Output: &fakeOutput{}})
	require.NoError(t, p.Start())
	p.Close()
	p.Close()
	assert.False(t, p.Play(core.NewCue(core.CueJump)))
}

// The real speaker may be missing in CI; only the fallback path is checked.
func TestPlayerSystemSpeaker(t *testing.T) {
	p := New(Options{})
	defer p.Close()
	if err := p.Start(); err != nil {
		t.Logf("speaker unavailable: %v", err)
		assert.False(t, p.Enabled())
		return
	}
	assert.True(t, p.Enabled())
}
