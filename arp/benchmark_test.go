package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hotGenerator(tb testing.TB) *Generator {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Seed1, cfg.Seed2 = 2, 3
	cfg.Balance = 0.3
	g := newGenerator(tb, cfg)
	for k := Kind(0); k < NumKinds; k++ {
		g.SetTemperature(k, 0.5)
	}
	g.Play()
	return g
}

func TestTickDoesNotAllocate(t *testing.T) {
	g := hotGenerator(t)
	allocs := testing.AllocsPerRun(1000, func() {
		g.Advance()
		g.Generate()
	})
	assert.Zero(t, allocs)
}

func BenchmarkGenerate(b *testing.B) {
	g := hotGenerator(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Advance()
		g.Generate()
	}
}
