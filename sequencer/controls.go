package sequencer

import "go-arp/arp"

// The methods below back the keyboard controls of the TUI. Temperature,
// balance and seed steps read and write under the generator's lock.

// NudgeTemperature adds delta to one temperature.
func (m *Manager) NudgeTemperature(k arp.Kind, delta float64) {
	m.gen.ShiftTemperature(k, delta)
	m.notifyUpdate()
}

// NudgeOverall moves the overall temperature by delta, scaling every
// temperature proportionally.
func (m *Manager) NudgeOverall(delta float64) {
	o := m.gen.OverallTemperature()
	pos := max(0, min(1, o+delta))
	m.gen.ChangeAllTemperaturesByProportion(Proportion(pos, o))
	m.notifyUpdate()
}

// NudgeBalance moves the seed balance by delta.
func (m *Manager) NudgeBalance(delta float64) {
	m.gen.ShiftSeedBalance(delta)
	m.notifyUpdate()
}

// CycleSeed steps the first (slot 0) or second seed through the catalog.
func (m *Manager) CycleSeed(slot, delta int) {
	m.gen.StepSeed(slot, delta)
	m.notifyUpdate()
}

// CycleToneDistribution selects the next tone distribution.
func (m *Manager) CycleToneDistribution() {
	next := (m.gen.ToneDistributionChoice() + 1) % m.gen.NumToneDistributions()
	_ = m.gen.SetToneDistributionChoice(next)
	m.notifyUpdate()
}

// ToggleMode switches between major and minor.
func (m *Manager) ToggleMode() {
	mode := arp.ModeMinor
	if m.gen.Mode() == arp.ModeMinor {
		mode = arp.ModeMajor
	}
	_ = m.gen.SetMode(mode)
	m.notifyUpdate()
}

// ShiftKey transposes the key by delta semitones.
func (m *Manager) ShiftKey(delta int) {
	_ = m.gen.SetKey(((m.gen.Key()+delta)%12 + 12) % 12)
	m.notifyUpdate()
}

// ResetHistory restores the seed at the next tick.
func (m *Manager) ResetHistory() {
	m.gen.ResetHistoryToSeed()
	m.notifyUpdate()
}
