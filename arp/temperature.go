package arp

import "math"

// Kind names one temperature axis.
type Kind int

const (
	Pitch          Kind = iota // how far pitch may stray from the seed pitch
	Interval                   // how far the interval may stray from the previous pattern
	Contour                    // how loosely the seed contour is followed
	Rhythmic                   // rhythmic freedom relative to the previous pattern
	Sparsity                   // likelihood of a rest
	Consistency                // freedom from the previous pattern's chroma
	Movement                   // pull toward the last sounded note
	Harmonic                   // admits less expected notes in the key
	Dynamic                    // per-note velocity jitter
	DynamicContour             // freedom from the seed velocities
	NumKinds
)

var kindNames = [NumKinds]string{
	"pitch", "interval", "contour", "rhythmic", "sparsity",
	"consistency", "movement", "harmonic", "dynamic", "dyn-contour",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// TemperatureSet holds one value in [0, 1] per Kind.
type TemperatureSet [NumKinds]float64

// Get returns the value for k.
func (t *TemperatureSet) Get(k Kind) float64 {
	if k < 0 || k >= NumKinds {
		return 0
	}
	return t[k]
}

// Set stores v for k, clamped to [0, 1]. NaN stores 0.
func (t *TemperatureSet) Set(k Kind, v float64) {
	if k < 0 || k >= NumKinds {
		return
	}
	t[k] = clamp01(v)
}

// Scale moves every value by the same proportion: toward 1 for p >= 0
// (t += p(1-t)), toward 0 for p < 0 (t *= 1+p). p is clamped to [-1, 1];
// the extremes land exactly on 1 and 0.
func (t *TemperatureSet) Scale(p float64) {
	if math.IsNaN(p) {
		return
	}
	p = math.Max(-1, math.Min(1, p))
	for i := range t {
		switch {
		case p >= 1:
			t[i] = 1
		case p >= 0:
			t[i] = clamp01(t[i] + p*(1-t[i]))
		default:
			t[i] = clamp01(t[i] * (1 + p))
		}
	}
}

// Overall returns the mean of all values.
func (t *TemperatureSet) Overall() float64 {
	sum := 0.0
	for _, v := range t {
		sum += v
	}
	return sum / float64(NumKinds)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
