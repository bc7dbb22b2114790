// Package provider builds the platform collaborators the control loop runs
// against: real peripherals on rp2040, an in-memory simulation elsewhere.
package provider

import (
	"io"

	"joypanel-go/services/hal/core"
	"joypanel-go/types"

	"tinygo.org/x/drivers"
)

// Resources is everything main needs to wire the firmware.
type Resources struct {
	Axes     core.AnalogInput
	Duty     core.DutyOutput
	Green    core.DigitalOutput
	Joystick core.IRQPin
	ButtonA  core.IRQPin
	Display  drivers.Displayer
	Console  io.Writer
	Watchdog core.Watchdog

	stop []func()
}

// Pin returns the interrupt pin for a logical button line, or nil.
func (r *Resources) Pin(l types.Line) core.IRQPin {
	switch l {
	case types.LineJoystick:
		return r.Joystick
	case types.LineButtonA:
		return r.ButtonA
	}
	return nil
}

// Close stops background workers in reverse start order.
func (r *Resources) Close() {
	for i := len(r.stop) - 1; i >= 0; i-- {
		r.stop[i]()
	}
	r.stop = nil
}

func (r *Resources) onClose(f func()) { r.stop = append(r.stop, f) }
