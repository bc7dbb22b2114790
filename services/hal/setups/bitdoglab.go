package setups

import (
	"time"

	"joypanel-go/types"
)

// BitDogLab is the Pico-based board with a KY-023 style joystick on GP26/GP27,
// an RGB LED on GP11..GP13 and an SSD1306 on I2C1.
var BitDogLab = types.Config{
	Name: "bitdoglab",
	Pins: types.PinConfig{
		AxisX:     26,
		AxisY:     27,
		Joystick:  22,
		ButtonA:   5,
		Red:       13,
		Green:     11,
		Blue:      12,
		PWMFreqHz: 1000,
	},
	Display: types.DisplayConfig{
		Bus:     "i2c1",
		SDA:     14,
		SCL:     15,
		Hz:      400_000,
		Address: 0x3C,
		Width:   128,
		Height:  64,
	},
	Mapping: types.MappingConfig{
		ADCMax:     4095,
		Center:     2048,
		DeadZone:   150,
		DutyGain:   32,
		BaseX:      60,
		BaseY:      28,
		RangeX:     114,
		RangeY:     50,
		MarkerSize: 8,
		Width:      128,
		Height:     64,
	},
	Debounce: types.DebounceConfig{
		Window: 200 * time.Millisecond,
	},
	Timing: types.TimingConfig{
		FramePeriod:     20 * time.Millisecond,
		StatsEvery:      time.Second,
		HeartbeatEvery:  5 * time.Second,
		WatchdogTimeout: 3 * time.Second,
		BootDelay:       2 * time.Second,
	},
	Console: types.ConsoleConfig{
		UART:   "uart0",
		TX:     0,
		RX:     1,
		Baud:   115200,
		Prefix: "[joy]",
	},
}

// Compact keeps the marker near the centre (narrower travel on both axes).
var Compact = withRanges(BitDogLab, "compact", 52, 24)

// Selected is the setup the firmware boots with.
var Selected = BitDogLab

func withRanges(c types.Config, name string, rx, ry int16) types.Config {
	c.Name = name
	c.Mapping.RangeX = rx
	c.Mapping.RangeY = ry
	return c
}
