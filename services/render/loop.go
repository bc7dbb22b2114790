// Package render runs the fixed-cadence output loop: sample, map, gate, drive
// LEDs, draw, transmit.
package render

import (
	"context"
	"time"

	"joypanel-go/bus"
	"joypanel-go/errcode"
	"joypanel-go/services/control"
	"joypanel-go/services/hal/core"
	"joypanel-go/services/mapper"
	"joypanel-go/types"
)

var (
	TopicState = bus.T("joy", "state")
	TopicStats = bus.T("joy", "stats")
	TopicFault = bus.T("joy", "fault")
)

// EdgeCounter exposes debounce totals for stats (implemented by input.Source).
type EdgeCounter interface {
	Counts() (accepted, rejected uint32)
}

// Deps are the loop's collaborators. Input, Output, Canvas, State and Mapper
// are required; the rest are optional.
type Deps struct {
	Input    core.AnalogInput
	Output   core.DutyOutput
	Canvas   core.Canvas
	State    *control.State
	Mapper   *mapper.Mapper
	Config   types.Config
	Watchdog core.Watchdog
	Conn     *bus.Connection
	Edges    EdgeCounter
}

// Frame is what one Step produced.
type Frame struct {
	Out     mapper.Output // mapper result before gating
	Red     uint16        // gated duties actually applied
	Blue    uint16
	Control control.Snapshot
}

type Loop struct {
	d          Deps
	w, h       int16
	size       int16
	statsEvery uint32 // frames

	frames    uint32
	last      Frame
	published control.Snapshot
	havePub   bool
}

func NewLoop(d Deps) *Loop {
	if d.Watchdog == nil {
		d.Watchdog = core.NopWatchdog{}
	}
	period := d.Config.Timing.FramePeriod
	if period <= 0 {
		period = 20 * time.Millisecond
		d.Config.Timing.FramePeriod = period
	}
	every := uint32(0)
	if d.Config.Timing.StatsEvery > 0 {
		every = uint32(max(d.Config.Timing.StatsEvery/period, 1))
	}
	return &Loop{
		d:          d,
		w:          d.Config.Display.Width,
		h:          d.Config.Display.Height,
		size:       d.Config.Mapping.MarkerSize,
		statsEvery: every,
	}
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint32 { return l.frames }

// Last returns the most recent completed frame.
func (l *Loop) Last() Frame { return l.last }

// Step runs exactly one cycle. A returned error is fatal for the loop.
func (l *Loop) Step() error {
	x := l.d.Input.ReadAxis(types.AxisX)
	y := l.d.Input.ReadAxis(types.AxisY)
	out := l.d.Mapper.Map(x, y)

	// One atomic read per cycle; everything below uses this snapshot.
	snap := l.d.State.Snapshot()
	red, blue := out.Red, out.Blue
	if !snap.PWMEnabled {
		red, blue = 0, 0
	}
	l.d.Output.SetDuty(types.LEDRed, red)
	l.d.Output.SetDuty(types.LEDBlue, blue)

	c := l.d.Canvas
	c.Clear()
	c.FillRect(out.Marker.X, out.Marker.Y, l.size, l.size)
	DrawBorder(c, snap.BorderStyle, l.w, l.h)
	if err := c.Flush(); err != nil {
		l.fault(err)
		return err
	}

	l.frames++
	l.last = Frame{Out: out, Red: red, Blue: blue, Control: snap}
	l.publish(snap)
	return nil
}

// Run steps at the configured frame period until ctx is cancelled (returns
// nil) or a step fails (returns the error). The watchdog is fed after every
// good frame.
func (l *Loop) Run(ctx context.Context) error {
	tick := time.NewTicker(l.d.Config.Timing.FramePeriod)
	defer tick.Stop()
	for {
		if err := l.Step(); err != nil {
			return err
		}
		l.d.Watchdog.Update()
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

func (l *Loop) publish(snap control.Snapshot) {
	conn := l.d.Conn
	if conn == nil {
		return
	}
	if !l.havePub || snap != l.published {
		conn.Publish(conn.NewMessage(TopicState, snap.Value(), true))
		l.published, l.havePub = snap, true
	}
	if l.statsEvery != 0 && l.frames%l.statsEvery == 0 {
		conn.Publish(conn.NewMessage(TopicStats, l.stats(), false))
	}
}

func (l *Loop) stats() types.StatsValue {
	v := types.StatsValue{
		Frames:  l.frames,
		Red:     l.last.Red,
		Blue:    l.last.Blue,
		MarkerX: l.last.Out.Marker.X,
		MarkerY: l.last.Out.Marker.Y,
	}
	if l.d.Edges != nil {
		v.Accepted, v.Rejected = l.d.Edges.Counts()
	}
	return v
}

func (l *Loop) fault(err error) {
	if l.d.Conn == nil {
		return
	}
	v := types.FaultValue{Code: string(errcode.Of(err))}
	if e, ok := err.(*errcode.E); ok {
		v.Op = e.Op
	}
	l.d.Conn.Publish(l.d.Conn.NewMessage(TopicFault, v, true))
}
