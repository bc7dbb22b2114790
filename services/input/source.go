// Package input turns raw falling edges on the two button lines into
// debounced control-state changes.
package input

import (
	"sync/atomic"
	"time"

	"joypanel-go/errcode"
	"joypanel-go/services/control"
	"joypanel-go/services/hal/core"
	"joypanel-go/types"
)

const DefaultWindow = 200 * time.Millisecond

// Source is the debounced event source. OnEdge is called from interrupt
// context; everything it touches is atomic and preallocated.
type Source struct {
	state  *control.State
	green  core.DigitalOutput
	window uint64 // microseconds
	shared bool

	// last accepted timestamp per line, stored as ts+1 so 0 means "never".
	last [types.LineCount]atomic.Uint64

	accepted atomic.Uint32
	perLine  [types.LineCount]atomic.Uint32
	rejected atomic.Uint32
}

func NewSource(state *control.State, green core.DigitalOutput, cfg types.DebounceConfig) *Source {
	w := cfg.Window
	if w <= 0 {
		w = DefaultWindow
	}
	return &Source{
		state:  state,
		green:  green,
		window: uint64(w / time.Microsecond),
		shared: cfg.Shared,
	}
}

// OnEdge handles one falling edge observed at tsUs (monotonic microseconds).
// It reports whether the edge was accepted. Rejected edges have no effect.
// The first edge on a line is always accepted, even right after boot.
func (s *Source) OnEdge(line types.Line, tsUs uint64) bool {
	if int(line) >= types.LineCount {
		s.rejected.Add(1)
		return false
	}
	slot := &s.last[line]
	if s.shared {
		slot = &s.last[0]
	}
	for {
		prev := slot.Load()
		if prev != 0 {
			lastTs := prev - 1
			if tsUs <= lastTs || tsUs-lastTs <= s.window {
				s.rejected.Add(1)
				return false
			}
		}
		if slot.CompareAndSwap(prev, tsUs+1) {
			break
		}
	}
	s.accepted.Add(1)
	s.perLine[line].Add(1)
	s.dispatch(line)
	return true
}

func (s *Source) dispatch(line types.Line) {
	switch line {
	case types.LineJoystick:
		snap := s.state.ToggleGreenAdvanceBorder()
		if s.green != nil {
			s.green.Set(snap.GreenLEDOn)
		}
	case types.LineButtonA:
		s.state.TogglePWM()
	}
}

// AcceptedOn returns how many edges were accepted on line; 0 for unknown lines.
func (s *Source) AcceptedOn(line types.Line) uint32 {
	if int(line) >= types.LineCount {
		return 0
	}
	return s.perLine[line].Load()
}

// Counts returns accepted and rejected edge totals.
func (s *Source) Counts() (accepted, rejected uint32) {
	return s.accepted.Load(), s.rejected.Load()
}

// Attach configures pin as a pulled-up input and routes its falling edges to
// OnEdge, stamped with now(). The returned func detaches the interrupt.
func (s *Source) Attach(line types.Line, pin core.IRQPin, now func() uint64) (func(), error) {
	if int(line) >= types.LineCount {
		return nil, errcode.UnknownLine
	}
	if pin == nil {
		return nil, errcode.UnknownPin
	}
	if err := pin.ConfigureInput(core.PullUp); err != nil {
		return nil, errcode.Wrap(errcode.MapDriverErr(err), "input.attach", err)
	}
	// Built once here so the interrupt path allocates nothing.
	handler := func() { s.OnEdge(line, now()) }
	if err := pin.SetIRQ(core.EdgeFalling, handler); err != nil {
		return nil, errcode.Wrap(errcode.MapDriverErr(err), "input.attach", err)
	}
	println("[input] attached", line.String(), "on pin", pin.Number())
	return func() { _ = pin.ClearIRQ() }, nil
}
