//go:build !rp2040

package provider

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"joypanel-go/errcode"
	"joypanel-go/services/display"
	"joypanel-go/services/hal/core"
	"joypanel-go/types"
)

// Sim exposes the simulated peripherals so a host harness can drive inputs
// and inspect outputs.
type Sim struct {
	Axes     *SimAxes
	Duty     *SimDuty
	Green    *SimLED
	Joystick *SimPin
	ButtonA  *SimPin
	Display  *display.Framebuffer
}

// New builds simulated resources; an enabled console writes to stdout.
func New(cfg types.Config) (*Resources, error) {
	r, _, err := NewSim(cfg)
	return r, err
}

func NewSim(cfg types.Config) (*Resources, *Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	center := cfg.Mapping.Center
	s := &Sim{
		Axes:     &SimAxes{},
		Duty:     &SimDuty{},
		Green:    &SimLED{},
		Joystick: &SimPin{n: cfg.Pins.Joystick},
		ButtonA:  &SimPin{n: cfg.Pins.ButtonA},
		Display:  display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height),
	}
	s.Axes.Set(center, center)
	r := &Resources{
		Axes:     s.Axes,
		Duty:     s.Duty,
		Green:    s.Green,
		Joystick: s.Joystick,
		ButtonA:  s.ButtonA,
		Display:  s.Display,
		Console:  io.Discard,
		Watchdog: core.NopWatchdog{},
	}
	if cfg.Console.UART != "" {
		r.Console = os.Stdout
	}
	println("[provider] host simulation ready:", cfg.Name)
	return r, s, nil
}

// SimAxes holds the current stick position.
type SimAxes struct {
	x, y atomic.Uint32
}

func (a *SimAxes) Set(x, y uint16) {
	a.x.Store(uint32(x))
	a.y.Store(uint32(y))
}

func (a *SimAxes) ReadAxis(ax types.Axis) uint16 {
	if ax == types.AxisY {
		return uint16(a.y.Load())
	}
	return uint16(a.x.Load())
}

// SimDuty records the last level applied per channel.
type SimDuty struct {
	mu   sync.Mutex
	duty [2]uint16
}

func (d *SimDuty) SetDuty(led types.LED, level uint16) {
	if int(led) >= len(d.duty) {
		return
	}
	d.mu.Lock()
	d.duty[led] = level
	d.mu.Unlock()
}

func (d *SimDuty) Duty(led types.LED) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duty[led]
}

type SimLED struct{ on atomic.Bool }

func (l *SimLED) Set(on bool) { l.on.Store(on) }
func (l *SimLED) On() bool    { return l.on.Load() }

// SimPin is an active-low button. Press drives it low and fires a registered
// falling-edge handler synchronously, as an interrupt would.
type SimPin struct {
	mu      sync.Mutex
	n       int
	pull    core.Pull
	low     bool
	edge    core.Edge
	handler func()
}

var _ core.IRQPin = (*SimPin)(nil)

func (p *SimPin) Number() int { return p.n }

func (p *SimPin) ConfigureInput(pull core.Pull) error {
	p.mu.Lock()
	p.pull = pull
	p.mu.Unlock()
	return nil
}

// Get reports the line level; released with pull-up reads high.
func (p *SimPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.low && p.pull == core.PullUp
}

func (p *SimPin) SetIRQ(edge core.Edge, handler func()) error {
	if edge == core.EdgeNone || handler == nil {
		return errcode.Unsupported
	}
	p.mu.Lock()
	p.edge, p.handler = edge, handler
	p.mu.Unlock()
	return nil
}

func (p *SimPin) ClearIRQ() error {
	p.mu.Lock()
	p.edge, p.handler = core.EdgeNone, nil
	p.mu.Unlock()
	return nil
}

func (p *SimPin) Press()   { p.drive(true) }
func (p *SimPin) Release() { p.drive(false) }

func (p *SimPin) drive(low bool) {
	p.mu.Lock()
	changed := p.low != low
	p.low = low
	h, e := p.handler, p.edge
	p.mu.Unlock()
	if !changed || h == nil {
		return
	}
	if (low && (e == core.EdgeFalling || e == core.EdgeBoth)) ||
		(!low && (e == core.EdgeRising || e == core.EdgeBoth)) {
		h()
	}
}
