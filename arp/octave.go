package arp

import "math"

// resolveOctave picks an absolute pitch for the table interval at pos.
// ref is the pitch the interval is measured against, prev the last sounded
// pitch before pos.
func (v *voice) resolveOctave(p *params, pos, interval, ref, prev int) int {
	chroma := chromaOf(interval + p.key)
	span := float64(p.octaves * 12)
	seedPitch := p.seed[pos].Pitch
	shape := seedShape(p.seed, pos, p.lowest)
	t := &p.temps

	w := v.octaves
	nearRef, nearSeed := 0, 0
	bestRef, bestSeed := math.MaxInt, math.MaxInt
	for k := range w {
		cand := p.lowest + chroma + 12*k

		d := absInt(cand - ref)
		w[k] = max(span-float64(d), 0)
		if d <= bestRef {
			nearRef, bestRef = k, d
		}

		if shape != NoNote && direction(prev, cand) == shape {
			w[k] += span * (1 - t[Contour])
		}

		if d := absInt(cand - seedPitch); d <= bestSeed {
			nearSeed, bestSeed = k, d
		}
	}

	for k := range w {
		if k != nearRef {
			w[k] *= t[Interval]*1.9 + 0.1
		}
		if k != nearSeed {
			w[k] *= t[Pitch] + 0.001
		}
	}

	return p.lowest + chroma + 12*v.sampler.Sample(w)
}
