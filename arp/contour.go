package arp

// Shape is the melodic direction at one step of a pattern.
type Shape int

const (
	NoNote Shape = iota
	Falling
	Rising
	Repeated
)

func (s Shape) String() string {
	switch s {
	case Falling:
		return "falling"
	case Rising:
		return "rising"
	case Repeated:
		return "repeated"
	default:
		return "no-note"
	}
}

// direction classifies the move from one pitch to the next.
func direction(from, to int) Shape {
	switch {
	case to > from:
		return Rising
	case to < from:
		return Falling
	default:
		return Repeated
	}
}

// lastSounded scans p backward from the step before pos and returns the first
// sounded pitch. If the scan comes back around to pos, fallback is returned.
func lastSounded(p []Note, pos, fallback int) int {
	n := len(p)
	for i := 1; i < n; i++ {
		if q := p[(pos-i+n)%n]; !q.Silent() {
			return q.Pitch
		}
	}
	return fallback
}

// seedShape returns the contour of seed at pos: NoNote for a rest, otherwise
// the direction from the nearest preceding sounded step.
func seedShape(seed []Note, pos, fallback int) Shape {
	here := seed[pos]
	if here.Silent() {
		return NoNote
	}
	return direction(lastSounded(seed, pos, fallback), here.Pitch)
}

// chromaOf reduces a pitch to its class in [0, 12).
func chromaOf(pitch int) int {
	return ((pitch % 12) + 12) % 12
}
