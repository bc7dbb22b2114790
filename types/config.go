package types

import (
	"time"

	"joypanel-go/errcode"
	"joypanel-go/x/mathx"
)

// Config groups board wiring and tuning for one firmware image.
type Config struct {
	Name     string
	Pins     PinConfig
	Display  DisplayConfig
	Mapping  MappingConfig
	Debounce DebounceConfig
	Timing   TimingConfig
	Console  ConsoleConfig
}

// PinConfig holds plain GPIO numbers; mapping to machine.Pin happens in the provider.
type PinConfig struct {
	AxisX, AxisY int // ADC-capable pins
	Joystick     int // joystick push button (falling edge, pull-up)
	ButtonA      int // secondary button (falling edge, pull-up)
	Red, Blue    int // PWM outputs
	Green        int // digital output
	PWMFreqHz    uint64
}

type DisplayConfig struct {
	Bus      string // "i2c0" or "i2c1"
	SDA, SCL int
	Hz       uint32
	Address  uint16
	Width    int16
	Height   int16
}

// MappingConfig parameterises the dead-zone and position remap.
type MappingConfig struct {
	ADCMax     uint16 // full-scale analogue reading
	Center     uint16 // rest reading
	DeadZone   uint16 // |raw-Center| <= DeadZone yields zero duty
	DutyGain   uint16 // duty = |raw-Center| * DutyGain
	BaseX      int16  // marker rest position
	BaseY      int16
	RangeX     int16 // full-scale pixel span per axis
	RangeY     int16
	MarkerSize int16
	Width      int16 // display bounds the marker is clamped into
	Height     int16
}

type DebounceConfig struct {
	Window time.Duration
	Shared bool // one window across all lines instead of one per line
}

type TimingConfig struct {
	FramePeriod     time.Duration
	StatsEvery      time.Duration
	HeartbeatEvery  time.Duration
	WatchdogTimeout time.Duration // 0 disables the hardware watchdog
	BootDelay       time.Duration
}

type ConsoleConfig struct {
	UART   string // "uart0", "uart1", "" disables the console
	TX, RX int
	Baud   uint32
	Prefix string
}

// Validate rejects configurations that would break the loop's invariants.
func (c Config) Validate() error {
	m := c.Mapping
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return invalid("display size must be positive")
	case m.Width != c.Display.Width || m.Height != c.Display.Height:
		return invalid("mapping bounds differ from display size")
	case m.MarkerSize <= 0 || m.MarkerSize > m.Width || m.MarkerSize > m.Height:
		return invalid("marker size out of range")
	case m.ADCMax == 0 || m.Center == 0 || m.Center >= m.ADCMax:
		return invalid("center must lie inside the analogue range")
	case m.DeadZone >= m.Center:
		return invalid("dead zone must be smaller than center")
	case c.Debounce.Window <= 0:
		return invalid("debounce window must be positive")
	case c.Timing.FramePeriod <= 0:
		return invalid("frame period must be positive")
	}
	maxX, maxY := m.Width-m.MarkerSize, m.Height-m.MarkerSize
	for _, raw := range [...]uint16{0, m.ADCMax} {
		d := mathx.Offset(raw, m.Center)
		x := int32(m.BaseX) + mathx.Scale(d, int32(m.RangeX), int32(m.ADCMax))
		y := int32(m.BaseY) - mathx.Scale(d, int32(m.RangeY), int32(m.ADCMax))
		if !mathx.Between(x, 0, int32(maxX)) {
			return invalid("horizontal range leaves the display")
		}
		if !mathx.Between(y, 0, int32(maxY)) {
			return invalid("vertical range leaves the display")
		}
	}
	return nil
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg}
}
