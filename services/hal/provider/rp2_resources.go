//go:build rp2040

package provider

import (
	"io"
	"sync"
	"time"

	"joypanel-go/errcode"
	"joypanel-go/services/hal/core"
	"joypanel-go/types"
	"joypanel-go/x/mathx"
	"joypanel-go/x/timex"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

const gpioMax = 29

// -----------------------------------------------------------------------------
// GPIO handle
// -----------------------------------------------------------------------------

type rp2GPIO struct {
	p machine.Pin
	n int
}

var _ core.IRQPin = (*rp2GPIO)(nil)

func newGPIO(n int) (*rp2GPIO, error) {
	if n < 0 || n > gpioMax {
		return nil, errcode.UnknownPin
	}
	return &rp2GPIO{p: machine.Pin(n), n: n}, nil
}

func (r *rp2GPIO) Number() int { return r.n }

func (r *rp2GPIO) ConfigureInput(pull core.Pull) error {
	var mode machine.PinMode
	switch pull {
	case core.PullUp:
		mode = machine.PinInputPullup
	case core.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2GPIO) ConfigureOutput(initial bool) {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
}

func (r *rp2GPIO) Set(b bool) { r.p.Set(b) }
func (r *rp2GPIO) Get() bool  { return r.p.Get() }

func (r *rp2GPIO) SetIRQ(edge core.Edge, handler func()) error {
	var ch machine.PinChange
	switch edge {
	case core.EdgeRising:
		ch = machine.PinRising
	case core.EdgeFalling:
		ch = machine.PinFalling
	case core.EdgeBoth:
		ch = machine.PinToggle
	default:
		return errcode.Unsupported
	}
	return r.p.SetInterrupt(ch, func(machine.Pin) { handler() })
}

func (r *rp2GPIO) ClearIRQ() error {
	return r.p.SetInterrupt(machine.PinFalling, nil)
}

// -----------------------------------------------------------------------------
// ADC
// -----------------------------------------------------------------------------

type rp2Axes struct {
	x, y machine.ADC
}

// ReadAxis returns a 12-bit sample; machine.ADC reports 16-bit left-aligned.
func (a *rp2Axes) ReadAxis(ax types.Axis) uint16 {
	if ax == types.AxisY {
		return a.y.Get() >> 4
	}
	return a.x.Get() >> 4
}

// -----------------------------------------------------------------------------
// PWM (RP2040)
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type pwmChan struct {
	ctrl  pwmCtrl
	chIdx uint8 // 0 => A, 1 => B
	hwTop uint32
}

// rp2Duty drives the red and blue channels. Red and blue may share a slice;
// the slice is configured once and must agree on frequency.
type rp2Duty struct {
	mu sync.Mutex
	ch [2]pwmChan
}

func newDuty(pins types.PinConfig) (*rp2Duty, error) {
	d := &rp2Duty{}
	freq := map[uint8]uint64{}
	for led, n := range [2]int{types.LEDRed: pins.Red, types.LEDBlue: pins.Blue} {
		if n < 0 || n > gpioMax {
			return nil, errcode.UnknownPin
		}
		slice, err := machine.PWMPeripheral(machine.Pin(n))
		if err != nil {
			return nil, errcode.Unsupported
		}
		ctrl := pwmGroupBySlice(slice)
		if f, ok := freq[slice]; !ok {
			period := timex.PeriodFromHz(uint32(pins.PWMFreqHz))
			if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
				return nil, errcode.Wrap(errcode.MapDriverErr(err), "pwm.configure", err)
			}
			freq[slice] = pins.PWMFreqHz
		} else if f != pins.PWMFreqHz {
			return nil, errcode.Conflict
		}
		machine.Pin(n).Configure(machine.PinConfig{Mode: machine.PinPWM})
		// Channel within the slice: even pin => A(0), odd pin => B(1).
		d.ch[led] = pwmChan{ctrl: ctrl, chIdx: uint8(n & 1), hwTop: ctrl.Top()}
		ctrl.Set(uint8(n&1), 0)
	}
	return d, nil
}

func (d *rp2Duty) SetDuty(led types.LED, level uint16) {
	if int(led) >= len(d.ch) {
		return
	}
	d.mu.Lock()
	c := d.ch[led]
	c.ctrl.Set(c.chIdx, mathx.ScaleU16(level, c.hwTop))
	d.mu.Unlock()
}

// -----------------------------------------------------------------------------
// I²C owner (one worker per bus)
// -----------------------------------------------------------------------------

// request posted to the per-bus worker
type i2cReq struct {
	addr uint16
	w, r []byte
	done chan error // buffered(1); worker replies best-effort
}

// per-bus owner that hosts a single worker goroutine
type i2cOwner struct {
	hw   *machine.I2C
	reqs chan i2cReq
	quit chan struct{}
}

func newI2COwner(hw *machine.I2C) *i2cOwner {
	o := &i2cOwner{
		hw:   hw,
		reqs: make(chan i2cReq, 16),
		quit: make(chan struct{}),
	}
	go o.loop()
	return o
}

func (o *i2cOwner) loop() {
	for {
		select {
		case req := <-o.reqs:
			err := o.hw.Tx(req.addr, req.w, req.r)
			// best-effort reply; do not block the worker
			select {
			case req.done <- err:
			default:
			}
		case <-o.quit:
			return
		}
	}
}

func (o *i2cOwner) stop() { close(o.quit) }

// driversI2C adapts the owner to tinygo.org/x/drivers.I2C with a per-call
// deadline, so a wedged bus surfaces as a flush error instead of a hang.
type driversI2C struct {
	o       *i2cOwner
	timeout time.Duration
}

var _ drivers.I2C = (*driversI2C)(nil)

func (d *driversI2C) Tx(addr uint16, w, r []byte) error {
	req := i2cReq{addr: addr, w: w, r: r, done: make(chan error, 1)}

	t := time.NewTimer(d.timeout)
	defer t.Stop()
	select {
	case d.o.reqs <- req:
	case <-t.C:
		return errcode.Busy
	}
	select {
	case err := <-req.done:
		return err
	case <-t.C:
		return errcode.Timeout
	}
}

func i2cByName(name string) *machine.I2C {
	switch name {
	case "i2c0":
		return machine.I2C0
	case "i2c1":
		return machine.I2C1
	}
	return nil
}

func uartByName(name string) *uartx.UART {
	switch name {
	case "uart0":
		return uartx.UART0
	case "uart1":
		return uartx.UART1
	}
	return nil
}

// -----------------------------------------------------------------------------
// Watchdog
// -----------------------------------------------------------------------------

type rp2Watchdog struct{}

func (rp2Watchdog) Update() { machine.Watchdog.Update() }

// -----------------------------------------------------------------------------
// Construction
// -----------------------------------------------------------------------------

// New claims and configures every peripheral named by cfg. The watchdog is
// armed last so slow display start-up cannot trip it.
func New(cfg types.Config) (*Resources, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Resources{}

	// Analogue axes.
	machine.InitADC()
	axes := &rp2Axes{
		x: machine.ADC{Pin: machine.Pin(cfg.Pins.AxisX)},
		y: machine.ADC{Pin: machine.Pin(cfg.Pins.AxisY)},
	}
	axes.x.Configure(machine.ADCConfig{})
	axes.y.Configure(machine.ADCConfig{})
	r.Axes = axes

	// Red/blue PWM.
	duty, err := newDuty(cfg.Pins)
	if err != nil {
		return nil, err
	}
	r.Duty = duty

	// Green LED and buttons.
	green, err := newGPIO(cfg.Pins.Green)
	if err != nil {
		return nil, err
	}
	green.ConfigureOutput(false)
	r.Green = green
	if r.Joystick, err = newGPIO(cfg.Pins.Joystick); err != nil {
		return nil, err
	}
	if r.ButtonA, err = newGPIO(cfg.Pins.ButtonA); err != nil {
		return nil, err
	}

	// Display on its I2C bus.
	hw := i2cByName(cfg.Display.Bus)
	if hw == nil {
		return nil, errcode.UnknownBus
	}
	sda, scl := machine.Pin(cfg.Display.SDA), machine.Pin(cfg.Display.SCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := hw.Configure(machine.I2CConfig{SCL: scl, SDA: sda, Frequency: cfg.Display.Hz}); err != nil {
		return nil, errcode.Wrap(errcode.MapDriverErr(err), "i2c.configure", err)
	}
	owner := newI2COwner(hw)
	r.onClose(owner.stop)
	dev := ssd1306.NewI2C(&driversI2C{o: owner, timeout: 250 * time.Millisecond})
	dev.Configure(ssd1306.Config{
		Width:    cfg.Display.Width,
		Height:   cfg.Display.Height,
		Address:  cfg.Display.Address,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()
	r.Display = &dev

	// Console UART.
	r.Console = io.Discard
	if cfg.Console.UART != "" {
		u := uartByName(cfg.Console.UART)
		if u == nil {
			return nil, errcode.UnknownBus
		}
		if err := u.Configure(uartx.UARTConfig{
			BaudRate: cfg.Console.Baud,
			TX:       machine.Pin(cfg.Console.TX),
			RX:       machine.Pin(cfg.Console.RX),
		}); err != nil {
			return nil, errcode.Wrap(errcode.MapDriverErr(err), "uart.configure", err)
		}
		r.Console = u
	}

	if cfg.Timing.WatchdogTimeout > 0 {
		machine.Watchdog.Configure(machine.WatchdogConfig{
			TimeoutMillis: uint32(cfg.Timing.WatchdogTimeout / time.Millisecond),
		})
		machine.Watchdog.Start()
		r.Watchdog = rp2Watchdog{}
	} else {
		r.Watchdog = core.NopWatchdog{}
	}
	println("[provider] rp2040 ready:", cfg.Name)
	return r, nil
}
