package sequencer

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"go-arp/arp"
	"go-arp/config"
	"go-arp/debug"
	"go-arp/midi"
)

// Sender receives the generated voice. *midi.Output implements it.
type Sender interface {
	NoteOn(note, velocity uint8) error
	NoteOff(note uint8) error
	AllOff() error
}

// Tempo CC range in BPM
const (
	TempoCCMin = 90
	TempoCCMax = 150
)

// Manager drives one generator from a clock and routes control events to it
type Manager struct {
	gen      *arp.Generator
	controls config.Controls
	temps    map[uint8]arp.Kind

	mu       sync.Mutex
	out      Sender
	tempo    int
	sounding int
	recent   ring
	pattern  []arp.Note

	lastFallbacks uint64        // clock goroutine only
	interruptChan chan struct{} // tempo or metre changed, reset the ticker

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager wires gen to the controller map. Output is optional.
func NewManager(gen *arp.Generator, controls config.Controls, out Sender) *Manager {
	return &Manager{
		gen:           gen,
		controls:      controls,
		temps:         controls.Temperatures(),
		out:           out,
		tempo:         120,
		sounding:      arp.Silence,
		pattern:       gen.ActiveSeed(),
		interruptChan: make(chan struct{}, 1),
		UpdateChan:    make(chan struct{}, 1),
	}
}

// Generator returns the driven generator.
func (m *Manager) Generator() *arp.Generator {
	return m.gen
}

// SetOutput swaps the output, releasing any note held on the old one.
func (m *Manager) SetOutput(out Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
	m.out = out
}

// Tick advances one step and sounds the generated note.
func (m *Manager) Tick() {
	m.gen.Advance()
	if !m.gen.IsPlaying() {
		m.notifyUpdate()
		return
	}
	n := m.gen.Generate()
	pos := m.gen.Position()

	m.mu.Lock()
	// Stop may have run since Generate; its release must win
	if m.gen.IsPlaying() {
		m.sound(n)
	}
	m.recent.push(n)
	if len(m.pattern) != m.gen.Length() {
		m.pattern = m.gen.ActiveSeed()
	}
	m.pattern[pos%len(m.pattern)] = n
	m.mu.Unlock()

	m.notifyUpdate()
}

// sound releases the held note and starts n. Callers hold mu.
func (m *Manager) sound(n arp.Note) {
	m.release()
	if n.Silent() {
		return
	}
	m.sounding = n.Pitch
	if m.out == nil {
		return
	}
	if err := m.out.NoteOn(uint8(n.Pitch), Velocity(n.Velocity)); err != nil {
		debug.LogEvery(16, "midi", "note on: %v", err)
	}
}

// release ends the held note. Callers hold mu.
func (m *Manager) release() {
	if m.sounding == arp.Silence {
		return
	}
	if m.out != nil {
		if err := m.out.NoteOff(uint8(m.sounding)); err != nil {
			debug.LogEvery(16, "midi", "note off: %v", err)
		}
	}
	m.sounding = arp.Silence
}

// Velocity maps a generated velocity to MIDI, keeping every note audible.
func Velocity(v float64) uint8 {
	if math.IsNaN(v) {
		return 1
	}
	return uint8(max(1, min(127, math.Round(v*127))))
}

// Play starts generation
func (m *Manager) Play() {
	m.gen.Play()
	debug.Log("ctrl", "play")
	m.notifyUpdate()
}

// Stop halts generation, resets the history to the seed and releases the
// held note.
func (m *Manager) Stop() {
	m.gen.Stop()
	m.gen.ResetHistoryToSeed()
	m.mu.Lock()
	m.release()
	m.mu.Unlock()
	debug.Log("ctrl", "stop")
	m.notifyUpdate()
}

// TogglePlay flips between Play and Stop.
func (m *Manager) TogglePlay() {
	if m.gen.IsPlaying() {
		m.Stop()
	} else {
		m.Play()
	}
}

// SetTempo sets the BPM
func (m *Manager) SetTempo(bpm int) {
	bpm = max(config.MinTempo, min(config.MaxTempo, bpm))
	m.mu.Lock()
	m.tempo = bpm
	m.mu.Unlock()
	m.interrupt()
	m.notifyUpdate()
}

func (m *Manager) Tempo() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tempo
}

// StepDuration is the time between ticks: one subdivision at the tempo.
func (m *Manager) StepDuration() time.Duration {
	sub, _, _ := m.gen.Metre()
	return time.Minute / time.Duration(m.Tempo()*sub)
}

// HandleEvent applies one input event: a note sets the key, a mapped
// controller sets its parameter.
func (m *Manager) HandleEvent(e midi.Event) {
	switch e.Type {
	case midi.NoteOn:
		key := int(e.Note) % 12
		if err := m.gen.SetKey(key); err == nil {
			debug.Log("ctrl", "key %d from note %d", key, e.Note)
		}
	case midi.CC:
		m.handleCC(e.Note, e.Velocity)
	default:
		return
	}
	m.notifyUpdate()
}

func (m *Manager) handleCC(cc, value uint8) {
	v := float64(value) / 127
	if k, ok := m.temps[cc]; ok {
		m.gen.SetTemperature(k, v)
		return
	}

	c := m.controls
	switch cc {
	case c.Overall:
		p := Proportion(v, m.gen.OverallTemperature())
		m.gen.ChangeAllTemperaturesByProportion(p)
		debug.Log("ctrl", "overall %.3f, proportional change %.3f", v, p)
	case c.Balance:
		if err := m.gen.SetSeedBalance(v); err != nil {
			debug.Log("ctrl", "balance: %v", err)
		}
	case c.Mode:
		mode := arp.ModeMajor
		if value >= 64 {
			mode = arp.ModeMinor
		}
		_ = m.gen.SetMode(mode)
	case c.Play:
		// buttons send 0 on release
		if value > 0 {
			m.TogglePlay()
		}
	case c.Tempo:
		m.SetTempo(TempoFromCC(value))
	}
}

// Proportion is the change that moves overall temperature o to pos: the
// fraction of the remaining headroom when rising, of o itself when falling.
func Proportion(pos, o float64) float64 {
	switch {
	case pos > o && o < 1:
		return (pos - o) / (1 - o)
	case pos < o && o > 0:
		return (pos - o) / o
	}
	return 0
}

// TempoFromCC maps a controller value onto TempoCCMin..TempoCCMax.
func TempoFromCC(value uint8) int {
	return int(math.Round(TempoCCMin + float64(value)/127*(TempoCCMax-TempoCCMin)))
}

// State returns a snapshot for display.
func (m *Manager) State() State {
	g := m.gen
	a, b := g.ActiveSeeds()
	s := State{
		Step:             g.Position(),
		Length:           g.Length(),
		Playing:          g.IsPlaying(),
		Key:              g.Key(),
		Mode:             g.Mode(),
		Temps:            g.Temperatures(),
		Overall:          g.OverallTemperature(),
		Seed1:            a,
		Seed2:            b,
		Balance:          g.SeedBalance(),
		ToneDistribution: g.ToneDistributionChoice(),
		Seed:             g.ActiveSeed(),
		Fallbacks:        g.SamplerFallbacks(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s.Tempo = m.tempo
	s.Recent = m.recent.notes()
	s.Pattern = append([]arp.Note(nil), m.pattern...)
	s.Sounding = m.sounding
	return s
}

// Run drives the clock and drains events until ctx is done. events may be
// nil. The held note is released on return.
func (m *Manager) Run(ctx context.Context, events <-chan midi.Event) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.clockLoop(ctx)
	}()

	m.controlLoop(ctx, events)
	wg.Wait()

	m.mu.Lock()
	m.release()
	if m.out != nil {
		if err := m.out.AllOff(); err != nil {
			debug.Log("midi", "all notes off: %v", err)
		}
	}
	m.mu.Unlock()
}

// clockLoop ticks once per subdivision
func (m *Manager) clockLoop(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(m.StepDuration())
	defer ticker.Stop()
	debug.Log("clock", "started at %d bpm", m.Tempo())

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.interruptChan:
			ticker.Reset(m.StepDuration())
			debug.Log("clock", "step now %v", m.StepDuration())
		case <-ticker.C:
			m.Tick()
			m.reportFallbacks()
		}
	}
}

func (m *Manager) reportFallbacks() {
	f := m.gen.SamplerFallbacks()
	if f == m.lastFallbacks {
		return
	}
	m.lastFallbacks = f
	debug.LogEvery(16, "clock", "sampler fallback (total %d)", f)
}

// controlLoop consumes MIDI input
func (m *Manager) controlLoop(ctx context.Context, events <-chan midi.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			m.HandleEvent(e)
		}
	}
}

// interrupt signals the clock loop to recalculate
func (m *Manager) interrupt() {
	select {
	case m.interruptChan <- struct{}{}:
	default:
	}
}

// notifyUpdate notifies the TUI
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
