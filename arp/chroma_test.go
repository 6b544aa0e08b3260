package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restCatalog is the default tables with one four-step seed: a note, a rest,
// a note, a rest.
func restCatalog() *Catalog {
	cat := *DefaultCatalog()
	cat.Seeds = [][]Note{{{48, 1}, {Silence, 0.5}, {55, 1}, {Silence, 0.5}}}
	return &cat
}

func chromaGenerator(t *testing.T, choice int, draws ...float64) *Generator {
	t.Helper()
	cfg := Config{
		Catalog:             restCatalog(),
		SubdivisionsPerBeat: 4,
		BeatsPerBar:         1,
		BarsPerPattern:      1,
		LowestNote:          48,
		Octaves:             4,
		ToneDistribution:    choice,
		Rand:                &scripted{vals: draws},
		SeedRand:            constant(0),
	}
	return newGenerator(t, cfg)
}

func TestChromaRestStaysRestWhenRhythmIsCold(t *testing.T) {
	g := chromaGenerator(t, 0, 0, 0.3, 0.6, 0.99)
	g.SetSparsity(1)

	p := g.sync()
	for i := 0; i < 4; i++ {
		assert.Equal(t, Silence, g.voice.sampleChroma(p, 1, 48))
	}
}

func TestChromaNoteNeverRestsWhenRhythmIsCold(t *testing.T) {
	g := chromaGenerator(t, 2, 0, 0.3, 0.6, 0.99)
	g.SetSparsity(1)
	g.SetHarmonicTemperature(1) // high row 2 gives the silence slot weight

	p := g.sync()
	require.Positive(t, p.base[SilenceSlot])
	for i := 0; i < 4; i++ {
		assert.NotEqual(t, Silence, g.voice.sampleChroma(p, 0, 48))
	}
}

func TestChromaRootDroneAlwaysPicksRoot(t *testing.T) {
	g := chromaGenerator(t, ToneDistributionRoot, 0, 0.3, 0.6, 0.99)
	g.SetMovement(1)

	p := g.sync()
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, g.voice.sampleChroma(p, 2, 55))
	}
	assert.Zero(t, g.SamplerFallbacks())
}

func TestChromaConsistencyPullsTowardHistory(t *testing.T) {
	// With consistency cold the slot matching the previous chroma dominates.
	g := chromaGenerator(t, 0, 0.5)

	p := g.sync()
	assert.Equal(t, 0, g.voice.sampleChroma(p, 0, 48), "history 48 pulls toward the root")
	assert.Equal(t, 7, g.voice.sampleChroma(p, 2, 48), "history 55 pulls toward the fifth")
}

func TestChromaFollowsMode(t *testing.T) {
	g := chromaGenerator(t, 0, 0.5)
	require.NoError(t, g.SetMode(ModeMinor))

	p := g.sync()
	assert.Equal(t, ModeMinor, p.mode)
	// slot 2 is a minor third in the minor row
	assert.Equal(t, 3, p.catalog.Chroma[p.mode][2])
}

func TestChromaColdVectorRepeatsHistory(t *testing.T) {
	// rhythmic and sparsity cold leave a rest nothing to draw
	g := chromaGenerator(t, ToneDistributionRoot, 0.5)
	p := g.sync()
	assert.Equal(t, Silence, g.voice.sampleChroma(p, 1, 48))
	assert.Equal(t, uint64(1), g.SamplerFallbacks())

	// a sounded step whose row weights are all zero repeats its interval
	cat := restCatalog()
	cat.Low = [][NumSlots]float64{{}}
	cat.High = [][NumSlots]float64{{}}
	g = newGenerator(t, Config{
		Catalog:             cat,
		SubdivisionsPerBeat: 4,
		BeatsPerBar:         1,
		BarsPerPattern:      1,
		LowestNote:          48,
		Octaves:             4,
		Rand:                constant(0.5),
		SeedRand:            constant(0),
	})
	require.NoError(t, g.SetKey(2))
	p = g.sync()
	// history 55 is G, a fifth above D
	assert.Equal(t, 5, g.voice.sampleChroma(p, 2, 48))
	assert.Equal(t, uint64(1), g.SamplerFallbacks())
}
