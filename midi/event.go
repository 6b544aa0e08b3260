package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is a decoded channel message. For CC, Note is the controller number
// and Velocity the value.
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
}

// Decode converts the message kinds the instrument reacts to. A note-on with
// velocity 0 is reported as NoteOff.
func Decode(msg gomidi.Message) (Event, bool) {
	var ch, a, b uint8
	switch {
	case msg.GetNoteOn(&ch, &a, &b):
		if b == 0 {
			return Event{Type: NoteOff, Channel: ch, Note: a}, true
		}
		return Event{Type: NoteOn, Channel: ch, Note: a, Velocity: b}, true
	case msg.GetNoteOff(&ch, &a, &b):
		return Event{Type: NoteOff, Channel: ch, Note: a, Velocity: b}, true
	case msg.GetControlChange(&ch, &a, &b):
		return Event{Type: CC, Channel: ch, Note: a, Velocity: b}, true
	}
	return Event{}, false
}

// Message encodes e for sending.
func (e Event) Message() gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note)
	default:
		return gomidi.ControlChange(e.Channel, e.Note, e.Velocity)
	}
}
