package arp

// Silence marks a step with no sounding note. It is an ordinary pitch value and
// is blended arithmetically with real pitches when two seeds are interpolated.
const Silence = -1

// NumSlots is the width of a chroma distribution: twelve intervals plus silence.
const NumSlots = 13

// SilenceSlot is the chroma table slot holding Silence, shared by both modes.
const SilenceSlot = 3

// Modes
const (
	ModeMajor = 0
	ModeMinor = 1
	NumModes  = 2
)

// ToneDistributionRoot is the catalog row with a single dominant chroma slot
// (the root). With every temperature at zero it reproduces the seed's chroma.
const ToneDistributionRoot = 3

// Note is one step of a pattern. Pitch is a MIDI note number or Silence.
type Note struct {
	Pitch    int
	Velocity float64
}

// Silent reports whether the note is a rest.
func (n Note) Silent() bool {
	return n.Pitch == Silence
}

// Catalog holds the static tables the generator reads from. A Catalog must not
// be modified once handed to a Generator; several generators may share one.
type Catalog struct {
	// Chroma maps a distribution slot to an interval above the key root, per
	// mode. Earlier slots are more harmonically expected.
	Chroma [NumModes][NumSlots]int

	// Low and High are the base weight rows at harmonic temperature 0 and 1,
	// indexed by tone distribution choice.
	Low  [][NumSlots]float64
	High [][NumSlots]float64

	// Seeds are the precomposed patterns.
	Seeds [][]Note
}

// NumSeeds returns the number of seed patterns.
func (c *Catalog) NumSeeds() int {
	return len(c.Seeds)
}

// NumToneDistributions returns the number of base weight rows.
func (c *Catalog) NumToneDistributions() int {
	return len(c.Low)
}

func (c *Catalog) validate() error {
	if len(c.Seeds) == 0 {
		return ErrInvalidCatalog
	}
	for _, s := range c.Seeds {
		if len(s) == 0 {
			return ErrInvalidCatalog
		}
	}
	if len(c.Low) == 0 || len(c.Low) != len(c.High) {
		return ErrInvalidCatalog
	}
	for m := 0; m < NumModes; m++ {
		if c.Chroma[m][SilenceSlot] != Silence {
			return ErrInvalidCatalog
		}
	}
	return nil
}

// DefaultCatalog returns the built-in tables. The returned value is shared.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = &Catalog{
	Chroma: [NumModes][NumSlots]int{
		{7, 0, 4, Silence, 9, 2, 11, 5, 8, 1, 3, 10, 6},
		{7, 0, 3, Silence, 9, 2, 10, 5, 8, 1, 6, 11, 4},
	},
	Low: [][NumSlots]float64{
		{8, 8, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{12, 12, 12, 0, 8, 8, 2, 0, 0, 0, 0, 2, 0},
		{12, 12, 12, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	High: [][NumSlots]float64{
		{8, 7, 6, 0, 4, 3, 2, 1, 0, 0, 0, 0, 0},
		{10, 8, 10, 0, 8, 8, 4, 2, 2, 2, 1, 4, 1},
		{8, 8, 8, 2, 12, 12, 8, 7, 6, 5, 4, 3, 2},
		{4, 12, 4, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0},
	},
	Seeds: [][]Note{
		{
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
			{48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0}, {48, 1.0},
		},
		{
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9}, {51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9},
			{55, 1.0}, {48, 0.9}, {51, 0.9}, {55, 0.9}, {48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9},
			{51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9}, {55, 1.0}, {48, 0.9}, {51, 0.9}, {55, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9}, {51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9}, {51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9},
			{55, 1.0}, {48, 0.9}, {51, 0.9}, {55, 0.9}, {48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9},
			{51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9}, {55, 1.0}, {48, 0.9}, {51, 0.9}, {55, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {48, 0.9}, {51, 1.0}, {55, 0.9}, {48, 0.9}, {51, 0.9},
		},
		{
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {60, 0.9}, {62, 1.0}, {63, 0.9}, {67, 0.9}, {72, 0.9},
			{74, 1.0}, {75, 0.9}, {79, 0.9}, {84, 0.9}, {86, 1.0}, {87, 0.9}, {93, 0.9}, {91, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {60, 0.9}, {62, 1.0}, {63, 0.9}, {67, 0.9}, {72, 0.9},
			{74, 1.0}, {75, 0.9}, {79, 0.9}, {84, 0.9}, {86, 1.0}, {87, 0.9}, {93, 0.9}, {91, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {60, 0.9}, {62, 1.0}, {63, 0.9}, {67, 0.9}, {72, 0.9},
			{74, 1.0}, {75, 0.9}, {79, 0.9}, {84, 0.9}, {86, 1.0}, {87, 0.9}, {93, 0.9}, {91, 0.9},
			{48, 1.0}, {51, 0.9}, {55, 0.9}, {60, 0.9}, {62, 1.0}, {63, 0.9}, {67, 0.9}, {72, 0.9},
			{74, 1.0}, {75, 0.9}, {79, 0.9}, {84, 0.9}, {86, 1.0}, {87, 0.9}, {93, 0.9}, {91, 0.9},
		},
		{
			{60, 1.0}, {72, 1.0}, {Silence, 0.4}, {60, 1.0}, {72, 1.0}, {Silence, 0.4}, {60, 1.0}, {72, 1.2},
			{Silence, 0.4}, {60, 1.0}, {72, 1.0}, {Silence, 0.4}, {60, 1.0}, {72, 1.0}, {Silence, 0.4}, {Silence, 0.4},
			{60, 1.0}, {63, 1.0}, {Silence, 0.4}, {60, 1.0}, {63, 1.0}, {Silence, 0.4}, {60, 1.0}, {63, 1.2},
			{Silence, 0.4}, {60, 1.0}, {63, 1.0}, {Silence, 0.4}, {60, 1.0}, {63, 1.0}, {Silence, 0.4}, {Silence, 0.4},
			{60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.2},
			{Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {Silence, 0.4},
			{60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.2},
			{Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {60, 1.0}, {67, 1.0}, {Silence, 0.4}, {Silence, 0.4},
		},
	},
}
