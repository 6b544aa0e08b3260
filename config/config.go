package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-arp/arp"
)

// MetreConfig sets the pattern grid
type MetreConfig struct {
	SubdivisionsPerBeat int `json:"subdivisionsPerBeat"`
	BeatsPerBar         int `json:"beatsPerBar"`
	BarsPerPattern      int `json:"barsPerPattern"`
}

// ArpConfig sets the generator's range and seeds
type ArpConfig struct {
	LowestNote       int     `json:"lowestNote"`
	Octaves          int     `json:"octaves"`
	Seed1            int     `json:"seed1"`
	Seed2            int     `json:"seed2"`
	SeedBalance      float64 `json:"seedBalance"`
	ToneDistribution int     `json:"toneDistribution"`
	RandSeed         uint64  `json:"randSeed,omitempty"` // 0 = time based
}

// MIDIConfig names the ports to open. Names match case-insensitively, and a
// substring is enough.
type MIDIConfig struct {
	InPort     string `json:"inPort,omitempty"`
	OutPort    string `json:"outPort,omitempty"`
	OutChannel int    `json:"outChannel"` // 1-16
}

// Controls maps controller numbers to instrument parameters
type Controls struct {
	Pitch          uint8 `json:"pitch"`
	Interval       uint8 `json:"interval"`
	Contour        uint8 `json:"contour"`
	Rhythmic       uint8 `json:"rhythmic"`
	Sparsity       uint8 `json:"sparsity"`
	Consistency    uint8 `json:"consistency"`
	Movement       uint8 `json:"movement"`
	Harmonic       uint8 `json:"harmonic"`
	Dynamic        uint8 `json:"dynamic"`
	DynamicContour uint8 `json:"dynamicContour"`

	Overall uint8 `json:"overall"`
	Balance uint8 `json:"balance"`
	Play    uint8 `json:"play"`
	Mode    uint8 `json:"mode"`
	Tempo   uint8 `json:"tempo"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GIMP .gpl file
}

// DebugConfig turns on the file log
type DebugConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Metre    MetreConfig `json:"metre"`
	Arp      ArpConfig   `json:"arp"`
	Tempo    int         `json:"tempo"`
	MIDI     MIDIConfig  `json:"midi"`
	Controls Controls    `json:"controls"`
	UI       UIConfig    `json:"ui,omitempty"`
	Debug    DebugConfig `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Metre: MetreConfig{
			SubdivisionsPerBeat: 4,
			BeatsPerBar:         4,
			BarsPerPattern:      4,
		},
		Arp: ArpConfig{
			LowestNote: 48,
			Octaves:    4,
			Seed1:      1,
			Seed2:      0,
		},
		Tempo: 120,
		MIDI: MIDIConfig{
			OutChannel: 1,
		},
		// QuNeo layout
		Controls: Controls{
			Pitch:          102,
			Harmonic:       103,
			Rhythmic:       104,
			DynamicContour: 105,
			Contour:        106,
			Sparsity:       107,
			Movement:       108,
			Dynamic:        109,
			Interval:       110,
			Consistency:    112,
			Overall:        14,
			Balance:        15,
			Play:           87,
			Mode:           3,
			Tempo:          89,
		},
	}
}

// Temperatures returns the controller number for each temperature Kind.
func (c Controls) Temperatures() map[uint8]arp.Kind {
	return map[uint8]arp.Kind{
		c.Pitch:          arp.Pitch,
		c.Interval:       arp.Interval,
		c.Contour:        arp.Contour,
		c.Rhythmic:       arp.Rhythmic,
		c.Sparsity:       arp.Sparsity,
		c.Consistency:    arp.Consistency,
		c.Movement:       arp.Movement,
		c.Harmonic:       arp.Harmonic,
		c.Dynamic:        arp.Dynamic,
		c.DynamicContour: arp.DynamicContour,
	}
}

func (c Controls) all() []uint8 {
	return []uint8{
		c.Pitch, c.Interval, c.Contour, c.Rhythmic, c.Sparsity,
		c.Consistency, c.Movement, c.Harmonic, c.Dynamic, c.DynamicContour,
		c.Overall, c.Balance, c.Play, c.Mode, c.Tempo,
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error

	m := c.Metre
	if m.SubdivisionsPerBeat <= 0 || m.BeatsPerBar <= 0 || m.BarsPerPattern <= 0 {
		errs = append(errs, fmt.Errorf("metre %d/%d/%d: values must be positive", m.SubdivisionsPerBeat, m.BeatsPerBar, m.BarsPerPattern))
	}

	a := c.Arp
	if a.Octaves < 1 || a.LowestNote < 0 || a.LowestNote+12*a.Octaves > 128 {
		errs = append(errs, fmt.Errorf("arp range: lowest %d with %d octaves leaves 0-127", a.LowestNote, a.Octaves))
	}
	if !(a.SeedBalance >= 0 && a.SeedBalance <= 1) {
		errs = append(errs, fmt.Errorf("arp seedBalance %v: must be in [0, 1]", a.SeedBalance))
	}
	if n := arp.DefaultCatalog().NumToneDistributions(); a.ToneDistribution < 0 || a.ToneDistribution >= n {
		errs = append(errs, fmt.Errorf("arp toneDistribution %d: must be below %d", a.ToneDistribution, n))
	}

	if c.Tempo < MinTempo || c.Tempo > MaxTempo {
		errs = append(errs, fmt.Errorf("tempo %d: must be in %d-%d", c.Tempo, MinTempo, MaxTempo))
	}
	if c.MIDI.OutChannel < 1 || c.MIDI.OutChannel > 16 {
		errs = append(errs, fmt.Errorf("midi outChannel %d: must be 1-16", c.MIDI.OutChannel))
	}

	seen := make(map[uint8]bool)
	for _, cc := range c.Controls.all() {
		if cc > 127 {
			errs = append(errs, fmt.Errorf("controls: %d is not a controller number", cc))
		}
		if seen[cc] {
			errs = append(errs, fmt.Errorf("controls: controller %d mapped twice", cc))
		}
		seen[cc] = true
	}

	return errors.Join(errs...)
}

// Tempo bounds in BPM
const (
	MinTempo = 20
	MaxTempo = 300
)

// ArpConfig converts to a generator config.
func (c *Config) ArpConfig() arp.Config {
	cfg := arp.DefaultConfig()
	cfg.SubdivisionsPerBeat = c.Metre.SubdivisionsPerBeat
	cfg.BeatsPerBar = c.Metre.BeatsPerBar
	cfg.BarsPerPattern = c.Metre.BarsPerPattern
	cfg.LowestNote = c.Arp.LowestNote
	cfg.Octaves = c.Arp.Octaves
	cfg.Seed1 = c.Arp.Seed1
	cfg.Seed2 = c.Arp.Seed2
	cfg.Balance = c.Arp.SeedBalance
	cfg.ToneDistribution = c.Arp.ToneDistribution
	cfg.Seed = c.Arp.RandSeed
	return cfg
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-arp"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
