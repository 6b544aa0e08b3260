package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-arp/arp"
	"go-arp/theme"
)

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C4", NoteName(60))
	assert.Equal(t, "A#2", NoteName(46))
	assert.Equal(t, "C-1", NoteName(0))
	assert.Equal(t, "--", NoteName(arp.Silence))
	assert.Equal(t, "B", KeyName(-1))
}

func TestRenderBar(t *testing.T) {
	th := theme.New(nil)
	out := RenderBar(th, "pitch", 0.5, 10)

	assert.Equal(t, 5, strings.Count(out, "█"))
	assert.Equal(t, 5, strings.Count(out, "░"))
	assert.True(t, strings.HasPrefix(out, "pitch"))
	assert.True(t, strings.HasSuffix(out, "0.50"))

	assert.Equal(t, 10, strings.Count(RenderBar(th, "x", 3, 10), "█"))
}

func TestRenderPattern(t *testing.T) {
	th := theme.New(nil)
	notes := []arp.Note{
		{Pitch: 48, Velocity: 1},
		{Pitch: arp.Silence, Velocity: 0.4},
		{Pitch: 60, Velocity: 1},
		{Pitch: 72, Velocity: 1},
		{Pitch: arp.Silence, Velocity: 0.4},
		{Pitch: 55, Velocity: 1},
	}
	out := RenderPattern(th, notes, 2, 4, 48, 96)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, 1, strings.Count(out, "▶"))
	assert.Equal(t, 2, strings.Count(out, "·"))
	assert.Equal(t, 3, strings.Count(out, "●"))
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Transport", Keys: []KeyBinding{{"p", "play/stop"}}},
		{Keys: []KeyBinding{{"q", "quit"}}},
	})
	assert.Equal(t, "Transport\n  p            play/stop\n  q            quit", out)
}
