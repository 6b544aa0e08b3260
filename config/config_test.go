package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-arp/arp"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	g, err := arp.New(cfg.ArpConfig())
	require.NoError(t, err)
	assert.Equal(t, 64, g.Length())
	assert.Equal(t, 48, g.LowestNote())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metre.BeatsPerBar = 0
	cfg.Arp.Octaves = 9
	cfg.Arp.SeedBalance = 1.5
	cfg.Arp.ToneDistribution = 12
	cfg.Tempo = 5
	cfg.MIDI.OutChannel = 0
	cfg.Controls.Overall = cfg.Controls.Pitch

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"metre", "arp range", "seedBalance", "toneDistribution", "tempo", "outChannel", "mapped twice"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tempo": 96, "arp": {"octaves": 3}, "midi": {"outPort": "bass station"}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 96, cfg.Tempo)
	assert.Equal(t, 3, cfg.Arp.Octaves)
	assert.Equal(t, "bass station", cfg.MIDI.OutPort)
	assert.Equal(t, 1, cfg.MIDI.OutChannel)
	assert.Equal(t, uint8(102), cfg.Controls.Pitch)
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tempo": `), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Arp.Seed1 = 3
	cfg.UI.Palette = "plasma.gpl"

	require.NoError(t, cfg.SaveFile(path))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestControlsTemperatures(t *testing.T) {
	m := DefaultConfig().Controls.Temperatures()
	assert.Len(t, m, int(arp.NumKinds))
	assert.Equal(t, arp.Consistency, m[112])
	assert.Equal(t, arp.DynamicContour, m[105])
}
