package arp

import "math"

// RandomSeed asks ChooseSeeds to pick a catalog entry at random.
const RandomSeed = -1

// seedStore is the control-side half of seed interpolation: the chosen pair,
// the balance and the ActiveSeed they produce. It is guarded by Generator.mu.
type seedStore struct {
	catalog *Catalog
	rng     Source
	a, b    int
	balance float64
	active  []Note // published; never written after publication
}

// choose resolves a requested pair. It reports whether the pair changed.
func (s *seedStore) choose(a, b int) bool {
	n := s.catalog.NumSeeds()
	if a < 0 || a >= n {
		a = RandomSeed
	}
	if b < 0 || b >= n {
		b = RandomSeed
	}
	if a == s.a && b == s.b {
		return false
	}

	bothRandom := a == RandomSeed && b == RandomSeed
	if a == RandomSeed {
		a = s.rng.IntN(n)
	}
	if b == RandomSeed {
		switch {
		case n < 2:
			b = a
		case bothRandom:
			// uniform over the other entries
			b = s.rng.IntN(n - 1)
			if b >= a {
				b++
			}
		default:
			b = s.rng.IntN(n)
		}
	}

	s.a, s.b = a, b
	return true
}

// interpolate builds a fresh ActiveSeed of the given length.
func (s *seedStore) interpolate(length int) []Note {
	out := make([]Note, length)
	Interpolate(out, s.catalog.Seeds[s.a], s.catalog.Seeds[s.b], s.balance)
	return out
}

// Interpolate fills dst with the per-step blend of seeds a and b by balance.
// Seeds shorter than dst repeat. Pitches are rounded half away from zero and
// Silence takes part in the blend as the number it is.
func Interpolate(dst, a, b []Note, balance float64) {
	for i := range dst {
		na := a[i%len(a)]
		nb := b[i%len(b)]
		dst[i] = Note{
			Pitch:    int(math.Round((1-balance)*float64(na.Pitch) + balance*float64(nb.Pitch))),
			Velocity: (1-balance)*na.Velocity + balance*nb.Velocity,
		}
	}
}
