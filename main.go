package main

import (
	"context"
	"runtime"
	"time"

	"joypanel-go/bus"
	"joypanel-go/services/console"
	"joypanel-go/services/control"
	"joypanel-go/services/display"
	"joypanel-go/services/hal/provider"
	"joypanel-go/services/hal/setups"
	"joypanel-go/services/heartbeat"
	"joypanel-go/services/input"
	"joypanel-go/services/mapper"
	"joypanel-go/services/render"
	"joypanel-go/types"
	"joypanel-go/x/timex"
)

func main() {
	cfg := setups.Selected

	// Allow USB CDC to enumerate and the display to power up before we print.
	time.Sleep(cfg.Timing.BootDelay)
	println("[main] boot", cfg.Name)

	res, err := provider.New(cfg)
	if err != nil {
		println("[main] provider:", err.Error())
		panic(err)
	}
	defer res.Close()

	state := control.New()
	src := input.NewSource(state, res.Green, cfg.Debounce)
	for _, l := range []types.Line{types.LineJoystick, types.LineButtonA} {
		if _, err := src.Attach(l, res.Pin(l), timex.NowUs); err != nil {
			println("[main] attach", l.String(), "failed:", err.Error())
			panic(err)
		}
	}

	println("[main] bootstrapping bus …")
	b := bus.NewBus(4)
	ctx := context.Background()

	con := console.New(b.NewConnection("console"), res.Console, cfg.Console.Prefix)
	go con.Run(ctx)

	hb := &heartbeat.Service{Interval: cfg.Timing.HeartbeatEvery}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	loop := render.NewLoop(render.Deps{
		Input:    res.Axes,
		Output:   res.Duty,
		Canvas:   display.NewSession(res.Display),
		State:    state,
		Mapper:   mapper.New(cfg.Mapping),
		Config:   cfg,
		Watchdog: res.Watchdog,
		Conn:     b.NewConnection("render"),
		Edges:    src,
	})
	printMem()
	println("[main] running loop every", cfg.Timing.FramePeriod.String())

	if err := loop.Run(ctx); err != nil {
		// Give the console a moment to drain the fault line; the watchdog
		// resets the board once it stops being fed.
		time.Sleep(100 * time.Millisecond)
		println("[main] loop stopped:", err.Error())
		panic(err)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
