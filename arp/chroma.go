package arp

import "math"

// sampleChroma builds the 13-way distribution for pos into v.dist and returns
// the chosen table interval, or Silence. prev is the last sounded pitch before
// pos. A distribution with no positive weight repeats History at pos.
func (v *voice) sampleChroma(p *params, pos, prev int) int {
	row := &p.catalog.Chroma[p.mode]
	w := v.dist[:]
	copy(w, p.base[:])

	t := &p.temps
	here := v.history[pos]
	if !here.Silent() {
		c := chromaOf(here.Pitch)
		exp := 8 * (1 - t[Consistency])
		for i, interval := range row {
			if interval == Silence {
				w[i] += t[Sparsity] * 24
				w[i] *= t[Rhythmic]
				continue
			}
			w[i] *= math.Pow(float64(13-absInt(interval-c))/9, exp)
		}
	} else {
		for i, interval := range row {
			if interval == Silence {
				w[i] += t[Sparsity] * 24
				continue
			}
			w[i] *= t[Rhythmic]
		}
	}

	// movement pulls toward the chroma of the last sounded note
	if m := t[Movement]; m > 0 {
		c := chromaOf(prev)
		for i, interval := range row {
			if interval != Silence {
				w[i] *= math.Pow(float64(12-absInt(interval-c))/3.5, m)
			}
		}
	}

	return row[v.sampler.SampleOr(w, repeatSlot(row, here, p.key))]
}

// repeatSlot is the slot that repeats the previous pattern's value at this
// step: silence for a rest, otherwise the slot of its interval above key.
func repeatSlot(row *[NumSlots]int, here Note, key int) int {
	if here.Silent() {
		return SilenceSlot
	}
	want := chromaOf(here.Pitch - key)
	for i, interval := range row {
		if interval == want {
			return i
		}
	}
	return SilenceSlot
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
