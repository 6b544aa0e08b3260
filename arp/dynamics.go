package arp

// velocity carries the previous cycle's velocity at pos forward, jitters it by
// the dynamic temperature and pulls it back toward the seed.
func (v *voice) velocity(p *params, pos int) float64 {
	vel := v.history[pos].Velocity
	if d := p.temps[Dynamic]; d > 0 {
		vel *= 1 + (0.5-v.src.Float64())*d/4
	}
	vel += (p.seed[pos].Velocity - vel) * (1 - p.temps[DynamicContour])
	return vel
}
