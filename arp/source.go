package arp

import (
	"math/rand/v2"
	"time"
)

// Source supplies uniform draws. Float64 returns a value in [0, 1) and IntN a
// value in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. Two sources built from the same seed
// and stream produce the same draws.
func NewSource(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream))
}

// timeSeed is used when a Config leaves Seed at zero.
func timeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
