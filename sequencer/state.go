package sequencer

import (
	"go-arp/arp"
)

// RecentNotes is how many generated steps State keeps for display.
const RecentNotes = 32

// State is a point-in-time copy of the instrument for the UI.
type State struct {
	Tempo   int
	Step    int
	Length  int
	Playing bool

	Key  int
	Mode int

	Temps   arp.TemperatureSet
	Overall float64

	Seed1, Seed2     int
	Balance          float64
	ToneDistribution int

	// Seed is the active seed, Recent the newest generated notes (oldest
	// first) and Pattern the last note generated at each step.
	Seed    []arp.Note
	Recent  []arp.Note
	Pattern []arp.Note

	Sounding  int // pitch currently held, or arp.Silence
	Fallbacks uint64
}

// ring is a fixed-size buffer of the newest notes.
type ring struct {
	buf  [RecentNotes]arp.Note
	next int
	n    int
}

func (r *ring) push(n arp.Note) {
	r.buf[r.next] = n
	r.next = (r.next + 1) % RecentNotes
	if r.n < RecentNotes {
		r.n++
	}
}

func (r *ring) notes() []arp.Note {
	out := make([]arp.Note, 0, r.n)
	start := (r.next - r.n + RecentNotes) % RecentNotes
	for i := 0; i < r.n; i++ {
		out = append(out, r.buf[(start+i)%RecentNotes])
	}
	return out
}
