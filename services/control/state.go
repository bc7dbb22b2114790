// Package control holds the state shared between button interrupts and the
// render loop. All fields live in one atomic word, so a reader always sees a
// consistent combination of flags and border style.
package control

import (
	"sync/atomic"

	"joypanel-go/types"
)

const (
	bitPWM      = 1 << 0
	bitGreen    = 1 << 1
	styleShift  = 2
	styleMask   = 0x3 << styleShift
	initialWord = bitPWM // pwm on, green off, style 0
)

// Snapshot is a consistent copy of the state at one instant.
type Snapshot struct {
	PWMEnabled  bool
	GreenLEDOn  bool
	BorderStyle uint8
}

// Value converts the snapshot to its telemetry payload.
func (s Snapshot) Value() types.ControlValue {
	return types.ControlValue{PWMEnabled: s.PWMEnabled, GreenLEDOn: s.GreenLEDOn, BorderStyle: s.BorderStyle}
}

// State is the process-wide control state. The zero value is not ready; use New.
type State struct {
	w atomic.Uint32
}

func New() *State {
	s := &State{}
	s.w.Store(initialWord)
	return s
}

// Snapshot performs a single atomic load.
func (s *State) Snapshot() Snapshot { return decode(s.w.Load()) }

// ToggleGreenAdvanceBorder flips the green LED flag and advances the border
// style by one (mod 3) in one step. Returns the new state.
func (s *State) ToggleGreenAdvanceBorder() Snapshot {
	for {
		old := s.w.Load()
		style := (uint32(decode(old).BorderStyle) + 1) % uint32(types.BorderStyles)
		nw := (old ^ bitGreen) &^ styleMask
		nw |= style << styleShift
		if s.w.CompareAndSwap(old, nw) {
			return decode(nw)
		}
	}
}

// TogglePWM flips the PWM enable flag. Returns the new state.
func (s *State) TogglePWM() Snapshot {
	for {
		old := s.w.Load()
		nw := old ^ bitPWM
		if s.w.CompareAndSwap(old, nw) {
			return decode(nw)
		}
	}
}

func decode(w uint32) Snapshot {
	return Snapshot{
		PWMEnabled:  w&bitPWM != 0,
		GreenLEDOn:  w&bitGreen != 0,
		BorderStyle: uint8((w & styleMask) >> styleShift),
	}
}
