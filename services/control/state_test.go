package control

import (
	"sync"
	"testing"
)

func TestInitialState(t *testing.T) {
	s := New().Snapshot()
	if !s.PWMEnabled || s.GreenLEDOn || s.BorderStyle != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}
}

func TestBorderCyclesThroughThreeStyles(t *testing.T) {
	st := New()
	want := []uint8{1, 2, 0, 1, 2, 0, 1}
	green := false
	for i, w := range want {
		snap := st.ToggleGreenAdvanceBorder()
		green = !green
		if snap.BorderStyle != w {
			t.Fatalf("press %d: style=%d want %d", i+1, snap.BorderStyle, w)
		}
		if snap.GreenLEDOn != green {
			t.Fatalf("press %d: green=%v want %v", i+1, snap.GreenLEDOn, green)
		}
		if !snap.PWMEnabled {
			t.Fatalf("press %d: joystick press must not touch pwm", i+1)
		}
	}
}

func TestTogglePWM(t *testing.T) {
	st := New()
	if st.TogglePWM().PWMEnabled {
		t.Fatal("first toggle should disable pwm")
	}
	if !st.TogglePWM().PWMEnabled {
		t.Fatal("second toggle should re-enable pwm")
	}
	if got := st.Snapshot(); got.GreenLEDOn || got.BorderStyle != 0 {
		t.Fatalf("pwm toggles must not touch other fields: %+v", got)
	}
}

func TestSnapshotValue(t *testing.T) {
	v := Snapshot{PWMEnabled: true, GreenLEDOn: true, BorderStyle: 2}.Value()
	if !v.PWMEnabled || !v.GreenLEDOn || v.BorderStyle != 2 {
		t.Fatalf("unexpected value %+v", v)
	}
}

// Concurrent writers and a reader: every observed style is legal and the
// final counts match the number of mutations.
func TestConcurrentMutationsStayConsistent(t *testing.T) {
	st := New()
	const n = 3000
	var wg sync.WaitGroup
	stop := make(chan struct{})
	bad := make(chan Snapshot, 1)

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			if s := st.Snapshot(); s.BorderStyle > 2 {
				select {
				case bad <- s:
				default:
				}
			}
		}
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			st.ToggleGreenAdvanceBorder()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n+1; i++ {
			st.TogglePWM()
		}
	}()
	wg.Wait()
	close(stop)

	select {
	case s := <-bad:
		t.Fatalf("observed illegal state %+v", s)
	default:
	}
	got := st.Snapshot()
	if got.BorderStyle != n%3 || got.GreenLEDOn != (n%2 == 1) || got.PWMEnabled != ((n+1)%2 == 0) {
		t.Fatalf("final state %+v after %d/%d mutations", got, n, n+1)
	}
}
