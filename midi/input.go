package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-arp/debug"
)

// Input delivers decoded events from one MIDI input port. Events that arrive
// while the channel is full are dropped.
type Input struct {
	name     string
	stopFunc func()

	mu     sync.Mutex
	closed bool
	events chan Event
}

// Listen opens the port and starts decoding.
func Listen(port drivers.In) (*Input, error) {
	in := &Input{
		name:   port.String(),
		events: make(chan Event, 64),
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		if e, ok := Decode(msg); ok {
			in.deliver(e)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", in.name, err)
	}
	in.stopFunc = stop
	debug.Log("midi", "listening on %s", in.name)
	return in, nil
}

func (in *Input) deliver(e Event) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	select {
	case in.events <- e:
	default:
		debug.LogEvery(32, "midi", "input %s full, dropping", in.name)
	}
}

// Name returns the port name.
func (in *Input) Name() string {
	return in.name
}

// Events is closed by Close.
func (in *Input) Events() <-chan Event {
	return in.events
}

func (in *Input) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.closed {
		in.closed = true
		close(in.events)
	}
	return nil
}
