// cmd/boardtest/main.go
package main

import (
	"fmt"
	"io"
	"time"

	"joypanel-go/services/control"
	"joypanel-go/services/display"
	"joypanel-go/services/hal/core"
	"joypanel-go/services/hal/provider"
	"joypanel-go/services/hal/setups"
	"joypanel-go/services/input"
	"joypanel-go/services/render"
	"joypanel-go/types"
	"joypanel-go/x/mathx"
	"joypanel-go/x/timex"
)

// ---------- Configuration ----------

var (
	// Sequencing timing
	stepDelay   = 40 * time.Millisecond
	dwell       = 1 * time.Second
	buttonGrace = 5 * time.Second

	// Centred stick must read within this many counts of Center.
	centreSlack uint16 = 400

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

const rampSteps = 16

// ---------- Minimal output to console + UART ----------

type out struct {
	w io.Writer
}

func (o *out) println(a ...any) {
	line := fmt.Sprintln(a...)
	print(line)
	if o.w != nil {
		_, _ = io.WriteString(o.w, line)
	}
}

// ---------- Steps ----------

// rampLED sweeps one channel up and back down.
func rampLED(d core.DutyOutput, led types.LED) {
	for i := 0; i <= rampSteps; i++ {
		d.SetDuty(led, uint16(i*65535/rampSteps))
		time.Sleep(stepDelay)
	}
	for i := rampSteps; i >= 0; i-- {
		d.SetDuty(led, uint16(i*65535/rampSteps))
		time.Sleep(stepDelay)
	}
}

// showBorders draws every border style in turn, then walks the marker
// through the four corners of its travel.
func showBorders(c core.Canvas, cfg types.Config) error {
	w, h := cfg.Display.Width, cfg.Display.Height
	size := cfg.Mapping.MarkerSize
	for s := uint8(0); s < types.BorderStyles; s++ {
		c.Clear()
		render.DrawBorder(c, s, w, h)
		if err := c.Flush(); err != nil {
			return err
		}
		time.Sleep(dwell)
	}
	for _, p := range [][2]int16{{0, 0}, {w - size, 0}, {w - size, h - size}, {0, h - size}} {
		c.Clear()
		c.FillRect(p[0], p[1], size, size)
		if err := c.Flush(); err != nil {
			return err
		}
		time.Sleep(dwell / 4)
	}
	return nil
}

// checkAxes reports axes that do not read near centre with the stick released.
func checkAxes(a core.AnalogInput, m types.MappingConfig) []string {
	var miss []string
	for _, ax := range []struct {
		name string
		ax   types.Axis
	}{{"x", types.AxisX}, {"y", types.AxisY}} {
		v := a.ReadAxis(ax.ax)
		if mathx.Abs(mathx.Offset(v, m.Center)) > int32(centreSlack) {
			miss = append(miss, "axis-"+ax.name)
		}
	}
	return miss
}

// waitPresses waits until every button line has produced an accepted edge.
func waitPresses(src *input.Source, grace time.Duration) bool {
	dead := time.Now().Add(grace)
	for time.Now().Before(dead) {
		if src.AcceptedOn(types.LineJoystick) > 0 && src.AcceptedOn(types.LineButtonA) > 0 {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func ledFlashPassFail(g core.DigitalOutput, pass bool) {
	if pass {
		// Double short
		for i := 0; i < 2; i++ {
			g.Set(true)
			time.Sleep(120 * time.Millisecond)
			g.Set(false)
			time.Sleep(200 * time.Millisecond)
		}
	} else {
		// Single long
		g.Set(true)
		time.Sleep(400 * time.Millisecond)
		g.Set(false)
		time.Sleep(200 * time.Millisecond)
	}
}

// runCycle exercises every output and input once and returns what failed.
func runCycle(res *provider.Resources, cfg types.Config, o *out) []string {
	var miss []string

	o.println("leds: red sweep")
	rampLED(res.Duty, types.LEDRed)
	o.println("leds: blue sweep")
	rampLED(res.Duty, types.LEDBlue)

	o.println("display: borders and marker corners")
	if err := showBorders(display.NewSession(res.Display), cfg); err != nil {
		o.println("display error:", err.Error())
		miss = append(miss, "display")
	}

	miss = append(miss, checkAxes(res.Axes, cfg.Mapping)...)

	// Count presses only; the green LED is reserved for the verdict.
	src := input.NewSource(control.New(), nopLED{}, cfg.Debounce)
	var detach []func()
	for _, l := range []types.Line{types.LineJoystick, types.LineButtonA} {
		d, err := src.Attach(l, res.Pin(l), timex.NowUs)
		if err != nil {
			o.println("attach", l.String(), "failed:", err.Error())
			miss = append(miss, "button-"+l.String())
			continue
		}
		detach = append(detach, d)
	}
	o.println("buttons: press the joystick and button A")
	if !waitPresses(src, buttonGrace) {
		miss = append(miss, "buttons")
	}
	for _, d := range detach {
		d()
	}
	return miss
}

type nopLED struct{}

func (nopLED) Set(bool) {}

// ---------- Main ----------

func main() {
	cfg := setups.Selected
	time.Sleep(cfg.Timing.BootDelay)

	// The bring-up sequence is slow; keep the hardware watchdog out of it.
	cfg.Timing.WatchdogTimeout = 0
	res, err := provider.New(cfg)
	if err != nil {
		println("[boardtest] provider:", err.Error())
		return
	}
	defer res.Close()
	o := &out{w: res.Console}

	cycle := 0
	for {
		cycle++
		o.println("=== boardtest: cycle ", cycle, " ===")

		miss := runCycle(res, cfg, o)
		pass := len(miss) == 0
		if pass {
			o.println("[PASS] leds swept; display flushed; axes centred; buttons seen")
		} else {
			o.println("[FAIL] missing or bad: ", fmt.Sprintf("%v", miss))
		}
		ledFlashPassFail(res.Green, pass)

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			o.println("completed ", cycle, " cycles; halting")
			return
		}
	}
}
