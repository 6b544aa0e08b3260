package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ScanTimeout bounds a port scan. CoreMIDI can hang.
const ScanTimeout = 3 * time.Second

var (
	ErrScanTimeout  = errors.New("midi: port scan timed out")
	ErrPortNotFound = errors.New("midi: port not found")
)

// Ports is one scan of the driver's ports. A driver must be registered by
// the main package, e.g. by importing drivers/rtmididrv.
type Ports struct {
	Ins  []drivers.In
	Outs []drivers.Out
}

// ListPorts scans in and out ports, giving up after timeout.
func ListPorts(timeout time.Duration) (Ports, error) {
	ch := make(chan Ports, 1)
	go func() {
		ch <- Ports{Ins: gomidi.GetInPorts(), Outs: gomidi.GetOutPorts()}
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-time.After(timeout):
		// sudo killall coreaudiod midiserver
		return Ports{}, ErrScanTimeout
	}
}

// InNames returns the input port names.
func (p Ports) InNames() []string {
	names := make([]string, len(p.Ins))
	for i, in := range p.Ins {
		names[i] = in.String()
	}
	return names
}

// OutNames returns the output port names.
func (p Ports) OutNames() []string {
	names := make([]string, len(p.Outs))
	for i, out := range p.Outs {
		names[i] = out.String()
	}
	return names
}

// FindIn returns the first input whose name matches query.
func (p Ports) FindIn(query string) (drivers.In, error) {
	if i := Match(p.InNames(), query); i >= 0 {
		return p.Ins[i], nil
	}
	return nil, fmt.Errorf("%w: input %q", ErrPortNotFound, query)
}

// FindOut returns the first output whose name matches query.
func (p Ports) FindOut(query string) (drivers.Out, error) {
	if i := Match(p.OutNames(), query); i >= 0 {
		return p.Outs[i], nil
	}
	return nil, fmt.Errorf("%w: output %q", ErrPortNotFound, query)
}

// Match picks the index of the port name equal to query, ignoring case, or
// failing that the first that contains it. It returns -1 if none do.
func Match(names []string, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1
	}
	for i, n := range names {
		if strings.ToLower(n) == q {
			return i
		}
	}
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), q) {
			return i
		}
	}
	return -1
}

// CloseDriver releases the registered driver.
func CloseDriver() {
	gomidi.CloseDriver()
}
