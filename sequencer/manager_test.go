package sequencer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-arp/arp"
	"go-arp/config"
	"go-arp/debug"
	"go-arp/midi"
)

// fixed returns the same draw every time.
type fixed float64

func (f fixed) Float64() float64 { return float64(f) }
func (f fixed) IntN(n int) int   { return int(float64(f) * float64(n)) }

// recorder is a Sender that keeps every message as text.
type recorder struct {
	mu        sync.Mutex
	calls     []string
	allOffErr error
}

func (r *recorder) NoteOn(note, velocity uint8) error {
	r.add(fmt.Sprintf("on %d %d", note, velocity))
	return nil
}

func (r *recorder) NoteOff(note uint8) error {
	r.add(fmt.Sprintf("off %d", note))
	return nil
}

func (r *recorder) AllOff() error {
	r.add("all off")
	return r.allOffErr
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newManager(t *testing.T, seed1, seed2 int) (*Manager, *recorder) {
	t.Helper()
	cfg := arp.DefaultConfig()
	cfg.Seed1, cfg.Seed2 = seed1, seed2
	cfg.Rand = fixed(0.5)
	cfg.SeedRand = fixed(0.5)
	g, err := arp.New(cfg)
	require.NoError(t, err)

	out := &recorder{}
	return NewManager(g, config.DefaultConfig().Controls, out), out
}

func cc(num, value uint8) midi.Event {
	return midi.Event{Type: midi.CC, Note: num, Velocity: value}
}

func TestTickRetriggersNotes(t *testing.T) {
	m, out := newManager(t, 0, 0)
	m.Play()

	m.Tick()
	m.Tick()

	assert.Equal(t, []string{"on 48 127", "off 48", "on 48 127"}, out.Calls())
	s := m.State()
	assert.Equal(t, 48, s.Sounding)
	assert.Equal(t, 1, s.Step)
	require.Len(t, s.Recent, 2)
	assert.Equal(t, 48, s.Pattern[1].Pitch)
}

func TestTickWhileStoppedOnlyAdvances(t *testing.T) {
	m, out := newManager(t, 0, 0)

	m.Tick()
	m.Tick()

	assert.Empty(t, out.Calls())
	assert.Equal(t, 1, m.State().Step)
	assert.Empty(t, m.State().Recent)
}

func TestSilenceReleasesHeldNote(t *testing.T) {
	// seed 3 rests on step 2; with full sparsity and no rhythmic temperature
	// a rest in history can only produce silence
	m, out := newManager(t, 3, 3)
	m.Generator().SetSparsity(1)
	m.Play()

	m.Tick()
	m.Tick()
	held := m.State().Sounding
	require.NotEqual(t, arp.Silence, held)

	m.Tick()
	calls := out.Calls()
	assert.Equal(t, fmt.Sprintf("off %d", held), calls[len(calls)-1])
	assert.Equal(t, arp.Silence, m.State().Sounding)
}

func TestStopReleasesAndResets(t *testing.T) {
	m, out := newManager(t, 0, 0)
	m.Play()
	m.Tick()

	m.HandleEvent(cc(87, 127))
	assert.False(t, m.Generator().IsPlaying())
	assert.Equal(t, []string{"on 48 127", "off 48"}, out.Calls())
	assert.Equal(t, arp.Silence, m.State().Sounding)

	// a stopped tick sends nothing more
	m.Tick()
	assert.Len(t, out.Calls(), 2)
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{1, 127},
		{0.5, 64},
		{0, 1},
		{1.2, 127},
		{-0.3, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Velocity(tt.in), "velocity %v", tt.in)
	}
}

func TestHandleEventRouting(t *testing.T) {
	m, _ := newManager(t, 0, 0)
	g := m.Generator()

	m.HandleEvent(midi.Event{Type: midi.NoteOn, Note: 62, Velocity: 90})
	assert.Equal(t, 2, g.Key())
	m.HandleEvent(midi.Event{Type: midi.NoteOff, Note: 65})
	assert.Equal(t, 2, g.Key())

	m.HandleEvent(cc(102, 127))
	assert.Equal(t, 1.0, g.PitchTemperature())
	m.HandleEvent(cc(112, 0))
	assert.Equal(t, 0.0, g.Consistency())

	m.HandleEvent(cc(15, 127))
	assert.Equal(t, 1.0, g.SeedBalance())

	m.HandleEvent(cc(3, 100))
	assert.Equal(t, arp.ModeMinor, g.Mode())
	m.HandleEvent(cc(3, 10))
	assert.Equal(t, arp.ModeMajor, g.Mode())

	m.HandleEvent(cc(87, 0))
	assert.False(t, g.IsPlaying(), "button release must not toggle")
	m.HandleEvent(cc(87, 127))
	assert.True(t, g.IsPlaying())

	m.HandleEvent(cc(89, 0))
	assert.Equal(t, TempoCCMin, m.Tempo())
	m.HandleEvent(cc(89, 127))
	assert.Equal(t, TempoCCMax, m.Tempo())

	// unmapped controllers are ignored
	before := g.Temperatures()
	m.HandleEvent(cc(1, 64))
	assert.Equal(t, before, g.Temperatures())
}

func TestOverallControllerMovesMean(t *testing.T) {
	m, _ := newManager(t, 0, 0)
	g := m.Generator()
	g.SetPitchTemperature(0.2)
	g.SetIntervalTemperature(0.6)
	g.SetConsistency(0.9)

	m.HandleEvent(cc(14, 100))
	assert.InDelta(t, 100.0/127, g.OverallTemperature(), 1e-9)

	m.HandleEvent(cc(14, 10))
	assert.InDelta(t, 10.0/127, g.OverallTemperature(), 1e-9)
}

func TestProportion(t *testing.T) {
	assert.InDelta(t, 0.5, Proportion(0.6, 0.2), 1e-12)
	assert.InDelta(t, -0.5, Proportion(0.1, 0.2), 1e-12)
	assert.Equal(t, 0.0, Proportion(0.4, 0.4))
	assert.Equal(t, 0.0, Proportion(1, 1))
	assert.Equal(t, 0.0, Proportion(0, 0))
	assert.Equal(t, 1.0, Proportion(1, 0))
	assert.Equal(t, -1.0, Proportion(0, 1))
}

func TestSetTempoClamps(t *testing.T) {
	m, _ := newManager(t, 0, 0)

	m.SetTempo(5)
	assert.Equal(t, config.MinTempo, m.Tempo())
	m.SetTempo(1000)
	assert.Equal(t, config.MaxTempo, m.Tempo())

	m.SetTempo(120)
	assert.Equal(t, 125*time.Millisecond, m.StepDuration())
}

func TestControls(t *testing.T) {
	m, _ := newManager(t, 0, 1)
	g := m.Generator()

	m.CycleSeed(0, 1)
	a, b := g.ActiveSeeds()
	assert.Equal(t, []int{1, 1}, []int{a, b})
	m.CycleSeed(1, -2)
	_, b = g.ActiveSeeds()
	assert.Equal(t, g.NumSeeds()-1, b)

	m.CycleToneDistribution()
	assert.Equal(t, 1, g.ToneDistributionChoice())

	m.ToggleMode()
	assert.Equal(t, arp.ModeMinor, g.Mode())

	m.ShiftKey(-1)
	assert.Equal(t, 11, g.Key())

	m.NudgeBalance(0.25)
	assert.Equal(t, 0.25, g.SeedBalance())
	m.NudgeBalance(2)
	assert.Equal(t, 1.0, g.SeedBalance())

	m.NudgeTemperature(arp.Movement, 0.3)
	assert.InDelta(t, 0.3, g.Movement(), 1e-12)

	m.NudgeOverall(0.5)
	assert.InDelta(t, 0.53, g.OverallTemperature(), 1e-9)
}

func TestRunTicksAndHandlesEvents(t *testing.T) {
	m, out := newManager(t, 0, 0)
	m.SetTempo(config.MaxTempo)
	m.Play()

	events := make(chan midi.Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, events)
		close(done)
	}()

	events <- midi.Event{Type: midi.NoteOn, Note: 67, Velocity: 100}
	assert.Eventually(t, func() bool { return m.Generator().Key() == 7 }, 2*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return len(out.Calls()) >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	calls := out.Calls()
	assert.Equal(t, "all off", calls[len(calls)-1])
	assert.Equal(t, arp.Silence, m.State().Sounding)
}

func TestRunLogsAllOffFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, debug.Enable(path))
	t.Cleanup(debug.Disable)

	m, out := newManager(t, 0, 0)
	out.allOffErr = errors.New("port gone")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Run(ctx, nil)

	assert.Equal(t, []string{"all off"}, out.Calls())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "all notes off: port gone")
}
