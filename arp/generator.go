package arp

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go-arp/debug"
)

// Config describes a Generator at construction.
type Config struct {
	// Catalog defaults to DefaultCatalog.
	Catalog *Catalog

	SubdivisionsPerBeat int
	BeatsPerBar         int
	BarsPerPattern      int

	// LowestNote and Octaves bound every generated pitch to
	// [LowestNote, LowestNote+12*Octaves).
	LowestNote int
	Octaves    int

	Seed1, Seed2     int // catalog indices or RandomSeed
	Balance          float64
	ToneDistribution int

	// Rand drives the tick path and SeedRand the random seed choice. When
	// nil both are PCG streams seeded from Seed, or from the clock if Seed
	// is zero.
	Rand     Source
	SeedRand Source
	Seed     uint64
}

// DefaultConfig returns a 4/4 metre over four bars, two seeds and a range of
// four octaves up from C3.
func DefaultConfig() Config {
	return Config{
		SubdivisionsPerBeat: 4,
		BeatsPerBar:         4,
		BarsPerPattern:      4,
		LowestNote:          48,
		Octaves:             4,
		Seed1:               1,
		Seed2:               0,
	}
}

// params is one published view of the control state. It is never modified
// after Store.
type params struct {
	catalog   *Catalog
	temps     TemperatureSet
	key, mode int
	base      [NumSlots]float64
	seed      []Note
	length    int
	lowest    int
	octaves   int

	// history replaces the tick's buffer when epoch changes
	epoch   uint64
	history []Note
}

// voice is the state owned by the tick goroutine.
type voice struct {
	src     Source
	sampler *Sampler
	dist    [NumSlots]float64
	octaves []float64
	history []Note
	last    Note
	epoch   uint64
}

// Generator produces one Note per metrical step. Advance, Generate and History
// belong to a single tick goroutine; every other method may be called from any
// goroutine.
type Generator struct {
	mu               sync.Mutex
	catalog          *Catalog
	temps            TemperatureSet
	key, mode        int
	choice           int
	base             [NumSlots]float64
	sub, beats, bars int
	length           int
	lowest, octaves  int
	seeds            seedStore
	epoch            uint64
	history          []Note

	snap    atomic.Pointer[params]
	pos     atomic.Int64
	playing atomic.Bool
	reset   atomic.Bool

	voice voice
}

// New builds a stopped Generator whose History equals its ActiveSeed.
func New(cfg Config) (*Generator, error) {
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	if cfg.SubdivisionsPerBeat <= 0 || cfg.BeatsPerBar <= 0 || cfg.BarsPerPattern <= 0 {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrInvalidMetre, cfg.SubdivisionsPerBeat, cfg.BeatsPerBar, cfg.BarsPerPattern)
	}
	if cfg.Octaves < 1 || cfg.LowestNote < 0 || cfg.LowestNote+12*cfg.Octaves > 128 {
		return nil, fmt.Errorf("%w: lowest %d, %d octaves", ErrInvalidRange, cfg.LowestNote, cfg.Octaves)
	}
	if cfg.ToneDistribution < 0 || cfg.ToneDistribution >= cat.NumToneDistributions() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidToneDistribution, cfg.ToneDistribution)
	}
	if !(cfg.Balance >= 0 && cfg.Balance <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrBalanceOutOfRange, cfg.Balance)
	}

	src, seedSrc := cfg.Rand, cfg.SeedRand
	if src == nil || seedSrc == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = timeSeed()
		}
		if src == nil {
			src = NewSource(seed, 1)
		}
		if seedSrc == nil {
			seedSrc = NewSource(seed, 2)
		}
	}

	g := &Generator{
		catalog: cat,
		choice:  cfg.ToneDistribution,
		sub:     cfg.SubdivisionsPerBeat,
		beats:   cfg.BeatsPerBar,
		bars:    cfg.BarsPerPattern,
		lowest:  cfg.LowestNote,
		octaves: cfg.Octaves,
		seeds: seedStore{
			catalog: cat,
			rng:     seedSrc,
			a:       -2,
			b:       -2,
			balance: cfg.Balance,
		},
	}
	g.length = g.sub * g.beats * g.bars
	g.rebase()
	g.seeds.choose(cfg.Seed1, cfg.Seed2)
	g.seeds.active = g.seeds.interpolate(g.length)
	g.history = cloneNotes(g.seeds.active)

	g.voice = voice{
		src:     src,
		sampler: NewSampler(src),
		octaves: make([]float64, g.octaves),
		history: g.history,
		last:    g.history[g.length-1],
	}
	g.pos.Store(int64(g.length - 1))
	g.publish()
	return g, nil
}

// publish stores a fresh snapshot of the control state. Callers hold mu.
func (g *Generator) publish() {
	g.snap.Store(&params{
		catalog: g.catalog,
		temps:   g.temps,
		key:     g.key,
		mode:    g.mode,
		base:    g.base,
		seed:    g.seeds.active,
		length:  g.length,
		lowest:  g.lowest,
		octaves: g.octaves,
		epoch:   g.epoch,
		history: g.history,
	})
}

// rebase recomputes the base chroma row from the tone distribution choice and
// the harmonic temperature. Callers hold mu.
func (g *Generator) rebase() {
	h := g.temps[Harmonic]
	lo, hi := &g.catalog.Low[g.choice], &g.catalog.High[g.choice]
	for i := range g.base {
		g.base[i] = lo[i]*(1-h) + hi[i]*h
	}
}

func reject(err error) error {
	debug.Log("arp", "%v", err)
	return err
}

// sync adopts a resized History and applies a pending reset. Tick goroutine
// only.
func (g *Generator) sync() *params {
	p := g.snap.Load()
	v := &g.voice
	if v.epoch != p.epoch {
		v.epoch = p.epoch
		v.history = p.history
	}
	if g.reset.Load() && g.reset.CompareAndSwap(true, false) {
		copy(v.history, p.seed)
	}
	return p
}

// Advance moves the position one step, wrapping at the pattern length. It
// runs whether or not the generator is playing.
func (g *Generator) Advance() {
	n := int64(g.snap.Load().length)
	for {
		old := g.pos.Load()
		if g.pos.CompareAndSwap(old, (old+1)%n) {
			return
		}
	}
}

// Generate returns the note for the current position. While stopped it
// returns the last note produced without drawing.
func (g *Generator) Generate() Note {
	p := g.sync()
	v := &g.voice
	if !g.playing.Load() {
		return v.last
	}

	pos := int(g.pos.Load()) % p.length
	prev := lastSounded(v.history, pos, p.lowest)

	n := Note{Pitch: Silence}
	if interval := v.sampleChroma(p, pos, prev); interval != Silence {
		ref := v.history[pos].Pitch
		if ref == Silence {
			ref = prev
		}
		n.Pitch = v.resolveOctave(p, pos, interval, ref, prev)
	}
	n.Velocity = v.velocity(p, pos)

	v.history[pos] = n
	v.last = n
	return n
}

// History returns the tick-owned pattern buffer. The slice is live: it must
// only be read from the goroutine that calls Generate.
func (g *Generator) History() []Note {
	g.sync()
	return g.voice.history
}

// SamplerFallbacks returns how many tick-path distributions had no positive
// weight and took their fallback answer instead.
func (g *Generator) SamplerFallbacks() uint64 {
	return g.voice.sampler.Fallbacks()
}

func (g *Generator) Play()           { g.playing.Store(true) }
func (g *Generator) Stop()           { g.playing.Store(false) }
func (g *Generator) IsPlaying() bool { return g.playing.Load() }

// ResetHistoryToSeed replaces History with the ActiveSeed before the next
// Generate.
func (g *Generator) ResetHistoryToSeed() {
	g.reset.Store(true)
}

// SetKey sets the root pitch class.
func (g *Generator) SetKey(pc int) error {
	if pc < 0 || pc > 11 {
		return reject(fmt.Errorf("%w: %d", ErrInvalidKey, pc))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.key = pc
	g.publish()
	return nil
}

func (g *Generator) Key() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.key
}

// SetMode selects ModeMajor or ModeMinor.
func (g *Generator) SetMode(m int) error {
	if m < 0 || m >= NumModes {
		return reject(fmt.Errorf("%w: %d", ErrInvalidMode, m))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mode = m
	g.publish()
	return nil
}

func (g *Generator) Mode() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// SetPosition moves the pattern pointer, for resync with an external clock.
func (g *Generator) SetPosition(p int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p < 0 || p >= g.length {
		return reject(fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidPosition, p, g.length))
	}
	g.pos.Store(int64(p))
	return nil
}

// Position returns the current step.
func (g *Generator) Position() int {
	return int(g.pos.Load()) % g.snap.Load().length
}

// Length returns the pattern length in steps.
func (g *Generator) Length() int {
	return g.snap.Load().length
}

// SetMetre reshapes the pattern. A new length rebuilds the ActiveSeed and
// resets History to it.
func (g *Generator) SetMetre(sub, beats, bars int) error {
	if sub <= 0 || beats <= 0 || bars <= 0 {
		return reject(fmt.Errorf("%w: %d/%d/%d", ErrInvalidMetre, sub, beats, bars))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sub, g.beats, g.bars = sub, beats, bars
	if n := sub * beats * bars; n != g.length {
		g.length = n
		g.seeds.active = g.seeds.interpolate(n)
		g.history = cloneNotes(g.seeds.active)
		g.epoch++
		for {
			old := g.pos.Load()
			if g.pos.CompareAndSwap(old, old%int64(n)) {
				break
			}
		}
	}
	g.publish()
	return nil
}

// Metre returns subdivisions per beat, beats per bar and bars per pattern.
func (g *Generator) Metre() (sub, beats, bars int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sub, g.beats, g.bars
}

// LowestNote returns the bottom of the generated range.
func (g *Generator) LowestNote() int { return g.lowest }

// Octaves returns the number of octaves in the generated range.
func (g *Generator) Octaves() int { return g.octaves }

// SetTemperature stores v, clamped to [0, 1], for kind k.
func (g *Generator) SetTemperature(k Kind, v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.temps.Set(k, v)
	if k == Harmonic {
		g.rebase()
	}
	g.publish()
}

// ShiftTemperature adds delta to kind k in one step, so a concurrent Set is
// never overwritten with a stale value.
func (g *Generator) ShiftTemperature(k Kind, delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.temps.Set(k, g.temps.Get(k)+delta)
	if k == Harmonic {
		g.rebase()
	}
	g.publish()
}

func (g *Generator) Temperature(k Kind) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.temps.Get(k)
}

// Temperatures returns a copy of all ten values.
func (g *Generator) Temperatures() TemperatureSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.temps
}

// ChangeAllTemperaturesByProportion moves every temperature toward 1 for
// p >= 0 and toward 0 for p < 0. See TemperatureSet.Scale.
func (g *Generator) ChangeAllTemperaturesByProportion(p float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.temps.Scale(p)
	g.rebase()
	g.publish()
}

// OverallTemperature is the mean of the ten temperatures.
func (g *Generator) OverallTemperature() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.temps.Overall()
}

func (g *Generator) SetPitchTemperature(v float64)          { g.SetTemperature(Pitch, v) }
func (g *Generator) SetIntervalTemperature(v float64)       { g.SetTemperature(Interval, v) }
func (g *Generator) SetContourTemperature(v float64)        { g.SetTemperature(Contour, v) }
func (g *Generator) SetRhythmicTemperature(v float64)       { g.SetTemperature(Rhythmic, v) }
func (g *Generator) SetSparsity(v float64)                  { g.SetTemperature(Sparsity, v) }
func (g *Generator) SetConsistency(v float64)               { g.SetTemperature(Consistency, v) }
func (g *Generator) SetMovement(v float64)                  { g.SetTemperature(Movement, v) }
func (g *Generator) SetHarmonicTemperature(v float64)       { g.SetTemperature(Harmonic, v) }
func (g *Generator) SetDynamicTemperature(v float64)        { g.SetTemperature(Dynamic, v) }
func (g *Generator) SetDynamicContourTemperature(v float64) { g.SetTemperature(DynamicContour, v) }

func (g *Generator) PitchTemperature() float64          { return g.Temperature(Pitch) }
func (g *Generator) IntervalTemperature() float64       { return g.Temperature(Interval) }
func (g *Generator) ContourTemperature() float64        { return g.Temperature(Contour) }
func (g *Generator) RhythmicTemperature() float64       { return g.Temperature(Rhythmic) }
func (g *Generator) Sparsity() float64                  { return g.Temperature(Sparsity) }
func (g *Generator) Consistency() float64               { return g.Temperature(Consistency) }
func (g *Generator) Movement() float64                  { return g.Temperature(Movement) }
func (g *Generator) HarmonicTemperature() float64       { return g.Temperature(Harmonic) }
func (g *Generator) DynamicTemperature() float64        { return g.Temperature(Dynamic) }
func (g *Generator) DynamicContourTemperature() float64 { return g.Temperature(DynamicContour) }

// ChooseSeeds selects the two catalog seeds to interpolate. Either may be
// RandomSeed; out-of-range indices are treated the same. Requesting the
// current pair does nothing.
func (g *Generator) ChooseSeeds(a, b int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.seeds.choose(a, b) {
		return
	}
	g.seeds.active = g.seeds.interpolate(g.length)
	g.publish()
}

// ActiveSeeds returns the resolved seed pair.
func (g *Generator) ActiveSeeds() (a, b int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seeds.a, g.seeds.b
}

// SetSeedBalance sets the interpolation ratio between the two seeds. A ratio
// outside [0, 1] is applied as 0 and reported with ErrBalanceOutOfRange.
func (g *Generator) SetSeedBalance(r float64) error {
	var err error
	if !(r >= 0 && r <= 1) {
		err = reject(fmt.Errorf("%w: %v", ErrBalanceOutOfRange, r))
		r = 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seeds.balance = r
	g.seeds.active = g.seeds.interpolate(g.length)
	g.publish()
	return err
}

// ShiftSeedBalance adds delta to the balance, clamped to [0, 1].
func (g *Generator) ShiftSeedBalance(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.seeds.balance + delta
	if !(r >= 0) {
		r = 0
	}
	g.seeds.balance = min(r, 1)
	g.seeds.active = g.seeds.interpolate(g.length)
	g.publish()
}

// StepSeed moves the first (slot 0) or second seed delta entries through the
// catalog, wrapping.
func (g *Generator) StepSeed(slot, delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.catalog.NumSeeds()
	a, b := g.seeds.a, g.seeds.b
	if slot == 0 {
		a = ((a+delta)%n + n) % n
	} else {
		b = ((b+delta)%n + n) % n
	}
	if !g.seeds.choose(a, b) {
		return
	}
	g.seeds.active = g.seeds.interpolate(g.length)
	g.publish()
}

func (g *Generator) SeedBalance() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seeds.balance
}

func (g *Generator) NumSeeds() int { return g.catalog.NumSeeds() }

// ActiveSeed returns a copy of the interpolated seed pattern.
func (g *Generator) ActiveSeed() []Note {
	return cloneNotes(g.snap.Load().seed)
}

// SetToneDistributionChoice selects the base weight row.
func (g *Generator) SetToneDistributionChoice(i int) error {
	if i < 0 || i >= g.catalog.NumToneDistributions() {
		return reject(fmt.Errorf("%w: %d of %d", ErrInvalidToneDistribution, i, g.catalog.NumToneDistributions()))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.choice = i
	g.rebase()
	g.publish()
	return nil
}

func (g *Generator) ToneDistributionChoice() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.choice
}

func (g *Generator) NumToneDistributions() int { return g.catalog.NumToneDistributions() }

func cloneNotes(n []Note) []Note {
	out := make([]Note, len(n))
	copy(out, n)
	return out
}
