// Package core declares the collaborator contracts the control loop consumes.
// Providers implement them per platform; tests use in-memory fakes.
package core

import "joypanel-go/types"

// ---- Analogue input ----

// AnalogInput samples one joystick axis. Readings are 12-bit (0..4095).
type AnalogInput interface {
	ReadAxis(ax types.Axis) uint16
}

// ---- PWM output ----

// DutyOutput applies a 16-bit duty (0..65535) to an LED channel.
// Fire-and-forget; the provider scales to its hardware top.
type DutyOutput interface {
	SetDuty(ch types.LED, level uint16)
}

// ---- Digital output ----

type DigitalOutput interface {
	Set(on bool)
}

// ---- GPIO with interrupts ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// IRQPin is an input pin that can deliver edge interrupts.
// The handler runs in interrupt context: it must not block or allocate.
type IRQPin interface {
	Number() int
	ConfigureInput(pull Pull) error
	Get() bool
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// ---- Display ----

// Canvas is an owned drawing session over a monochrome pixel buffer.
// Coordinates are clipped to the display; line endpoints are inclusive.
type Canvas interface {
	Clear()
	FillRect(x, y, w, h int16)
	Rect(x, y, w, h int16)
	HLine(x0, x1, y int16)
	VLine(x, y0, y1 int16)
	Flush() error
}

// ---- Supervision ----

// Watchdog is fed once per healthy frame.
type Watchdog interface {
	Update()
}

// NopWatchdog is used when no hardware watchdog is configured.
type NopWatchdog struct{}

func (NopWatchdog) Update() {}
