package arp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted replays a fixed list of draws.
type scripted struct {
	vals  []float64
	i     int
	calls int
}

func constant(v float64) *scripted { return &scripted{vals: []float64{v}} }

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	s.calls++
	return v
}

func (s *scripted) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

// testConfig is a four-bar, fixed-stream config over the default catalog.
func testConfig(seed1, seed2 int) Config {
	cfg := DefaultConfig()
	cfg.Seed1, cfg.Seed2 = seed1, seed2
	cfg.Rand = constant(0.5)
	cfg.SeedRand = constant(0.5)
	return cfg
}

func newGenerator(t testing.TB, cfg Config) *Generator {
	t.Helper()
	g, err := New(cfg)
	require.NoError(t, err)
	return g
}

func pitchesOf(notes []Note) []int {
	out := make([]int, len(notes))
	for i, n := range notes {
		out[i] = n.Pitch
	}
	return out
}
