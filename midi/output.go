package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Output sends notes on one channel of a MIDI output port.
type Output struct {
	name    string
	channel uint8
	send    func(gomidi.Message) error
	port    drivers.Out
}

// Open opens port for sending on channel (0-15).
func Open(port drivers.Out, channel uint8) (*Output, error) {
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}
	o := NewOutput(port.String(), channel, send)
	o.port = port
	return o, nil
}

// NewOutput wraps an existing send function.
func NewOutput(name string, channel uint8, send func(gomidi.Message) error) *Output {
	return &Output{name: name, channel: channel & 0x0F, send: send}
}

func (o *Output) Name() string { return o.name }

func (o *Output) NoteOn(note, velocity uint8) error {
	return o.write(Event{Type: NoteOn, Channel: o.channel, Note: note, Velocity: velocity})
}

func (o *Output) NoteOff(note uint8) error {
	return o.write(Event{Type: NoteOff, Channel: o.channel, Note: note})
}

// AllOff sends All Notes Off (CC 123).
func (o *Output) AllOff() error {
	return o.write(Event{Type: CC, Channel: o.channel, Note: 123})
}

func (o *Output) write(e Event) error {
	if err := o.send(e.Message()); err != nil {
		return fmt.Errorf("send to %s: %w", o.name, err)
	}
	return nil
}

// Close silences the channel and closes the port if Open opened it.
func (o *Output) Close() error {
	err := o.AllOff()
	if o.port != nil {
		if cerr := o.port.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
