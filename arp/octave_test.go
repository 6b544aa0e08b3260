package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOctaveColdPitchFollowsSeed(t *testing.T) {
	g := chromaGenerator(t, 0, 0.5)
	p := g.sync()

	// seed at step 0 is 48; history says 60
	assert.Equal(t, 48, g.voice.resolveOctave(p, 0, 0, 60, 55))
}

func TestOctaveFreePitchFollowsReference(t *testing.T) {
	g := chromaGenerator(t, 0, 0.5)
	g.SetPitchTemperature(1)
	p := g.sync()

	assert.Equal(t, 60, g.voice.resolveOctave(p, 0, 0, 60, 55))
}

func TestOctaveAppliesKey(t *testing.T) {
	g := chromaGenerator(t, 0, 0.5)
	require.NoError(t, g.SetKey(2))
	p := g.sync()

	assert.Equal(t, 50, g.voice.resolveOctave(p, 0, 0, 60, 55))
	// interval 11 above D wraps to C sharp
	got := g.voice.resolveOctave(p, 0, 11, 60, 55)
	assert.Equal(t, 1, chromaOf(got))
}

func TestOctaveStaysInRange(t *testing.T) {
	g := chromaGenerator(t, 0, 0, 0.13, 0.37, 0.5, 0.61, 0.88, 0.999)
	g.SetPitchTemperature(1)
	g.SetIntervalTemperature(1)
	g.SetContourTemperature(0.5)
	p := g.sync()

	for i := 0; i < 50; i++ {
		for _, interval := range []int{0, 4, 7, 11} {
			got := g.voice.resolveOctave(p, i%4, interval, 40+i, 100-i)
			assert.GreaterOrEqual(t, got, 48)
			assert.Less(t, got, 96)
			assert.Equal(t, interval, chromaOf(got))
		}
	}
}
