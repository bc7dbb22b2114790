//go:build !rp2040

package provider

import (
	"testing"
	"time"

	"joypanel-go/errcode"
	"joypanel-go/services/control"
	"joypanel-go/services/hal/core"
	"joypanel-go/services/hal/setups"
	"joypanel-go/services/input"
	"joypanel-go/types"
)

func TestNewSimStartsCentredAndReleased(t *testing.T) {
	r, s, err := NewSim(setups.BitDogLab)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer r.Close()
	if r.Axes.ReadAxis(types.AxisX) != 2048 || r.Axes.ReadAxis(types.AxisY) != 2048 {
		t.Fatal("axes not centred")
	}
	w, h := r.Display.Size()
	if w != 128 || h != 64 {
		t.Fatalf("display %dx%d", w, h)
	}
	if r.Pin(types.LineJoystick) != s.Joystick || r.Pin(types.LineButtonA) != s.ButtonA {
		t.Fatal("Pin mapping wrong")
	}
	if r.Pin(types.Line(9)) != nil {
		t.Fatal("unknown line should have no pin")
	}
	if s.Joystick.Number() != 22 || s.ButtonA.Number() != 5 {
		t.Fatalf("pins %d/%d", s.Joystick.Number(), s.ButtonA.Number())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := setups.BitDogLab
	cfg.Display.Width = 0
	if _, err := New(cfg); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("err=%v want invalid_config", err)
	}
}

func TestSimPinFiresOnFallingEdgeOnly(t *testing.T) {
	p := &SimPin{n: 5}
	_ = p.ConfigureInput(core.PullUp)
	n := 0
	if err := p.SetIRQ(core.EdgeFalling, func() { n++ }); err != nil {
		t.Fatal(err)
	}
	p.Press()
	p.Press() // no edge while held
	p.Release()
	if n != 1 {
		t.Fatalf("handler ran %d times want 1", n)
	}
	_ = p.ClearIRQ()
	p.Press()
	if n != 1 {
		t.Fatal("handler ran after ClearIRQ")
	}
}

func TestSimButtonsDriveControlState(t *testing.T) {
	r, s, err := NewSim(setups.BitDogLab)
	if err != nil {
		t.Fatal(err)
	}
	st := control.New()
	src := input.NewSource(st, r.Green, types.DebounceConfig{Window: 200 * time.Millisecond})

	var now uint64
	clock := func() uint64 { return now }
	for _, l := range []types.Line{types.LineJoystick, types.LineButtonA} {
		detach, err := src.Attach(l, r.Pin(l), clock)
		if err != nil {
			t.Fatalf("attach %v: %v", l, err)
		}
		defer detach()
	}
	if !s.Joystick.Get() {
		t.Fatal("pull-up button should read high when released")
	}

	s.Joystick.Press()
	s.Joystick.Release()
	now += 50_000 // bounce inside the window
	s.Joystick.Press()
	s.Joystick.Release()
	s.ButtonA.Press()

	snap := st.Snapshot()
	if !snap.GreenLEDOn || snap.BorderStyle != 1 || snap.PWMEnabled {
		t.Fatalf("snapshot=%+v", snap)
	}
	if !s.Green.On() {
		t.Fatal("green LED not driven")
	}
	if a, rj := src.Counts(); a != 2 || rj != 1 {
		t.Fatalf("counts=%d/%d", a, rj)
	}
}

func TestSimDutyRecordsLevels(t *testing.T) {
	d := &SimDuty{}
	d.SetDuty(types.LEDRed, 100)
	d.SetDuty(types.LEDBlue, 65535)
	d.SetDuty(types.LED(7), 1)
	if d.Duty(types.LEDRed) != 100 || d.Duty(types.LEDBlue) != 65535 {
		t.Fatal("duties not recorded")
	}
}
