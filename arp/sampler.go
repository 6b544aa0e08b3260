package arp

import (
	"math"
	"sync/atomic"
)

// Sampler draws indices from weight vectors. It is not safe for concurrent
// use except for Fallbacks.
type Sampler struct {
	src       Source
	fallbacks atomic.Uint64
}

// NewSampler returns a sampler drawing from src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Sample turns w into its cumulative distribution in place and returns the
// index picked by one uniform draw. Only indices with positive weight can be
// returned. If w has no positive weight it is replaced by a uniform
// distribution and the event is counted.
func (s *Sampler) Sample(w []float64) int {
	if !Cumulate(w) {
		s.fallbacks.Add(1)
	}
	return Pick(w, s.src.Float64())
}

// SampleOr is Sample with a fixed answer: when w has no positive weight it
// returns fallback without drawing, and counts the event.
func (s *Sampler) SampleOr(w []float64, fallback int) int {
	if !Cumulate(w) {
		s.fallbacks.Add(1)
		return fallback
	}
	return Pick(w, s.src.Float64())
}

// Fallbacks returns how many vectors had no positive weight.
func (s *Sampler) Fallbacks() uint64 {
	return s.fallbacks.Load()
}

// Cumulate normalizes w and replaces it with its running sum. Negative and
// non-finite weights count as zero. Entries from the last positive weight on
// are exactly 1. It returns false when the total was not positive, in which
// case w is rewritten as a uniform cumulative distribution.
func Cumulate(w []float64) bool {
	n := len(w)
	if n == 0 {
		return false
	}

	sum := 0.0
	last := -1
	for i, v := range w {
		if !(v > 0) || math.IsInf(v, 1) {
			w[i] = 0
			continue
		}
		sum += v
		last = i
	}

	if last < 0 || !(sum > 0) || math.IsInf(sum, 1) {
		for i := range w {
			w[i] = float64(i+1) / float64(n)
		}
		w[n-1] = 1
		return false
	}

	acc := 0.0
	for i := 0; i < last; i++ {
		acc += w[i] / sum
		w[i] = acc
	}
	for i := last; i < n; i++ {
		w[i] = 1
	}
	return true
}

// Pick returns the first index of the cumulative distribution cum whose value
// is at least u and greater than the previous entry.
func Pick(cum []float64, u float64) int {
	prev := 0.0
	for i, c := range cum {
		if c > prev && c >= u {
			return i
		}
		prev = c
	}
	// u >= 1 is outside the contract of Source; land on the last live slot.
	prev = 0
	hit := len(cum) - 1
	for i, c := range cum {
		if c > prev {
			hit = i
		}
		prev = c
	}
	return hit
}
