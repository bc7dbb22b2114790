package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"busy":           Busy,
		"conflict":       Conflict,
		"unsupported":    Unsupported,
		"invalid_config": InvalidConfig,
		"unknown_line":   UnknownLine,
		"unknown_pin":    UnknownPin,
		"unknown_bus":    UnknownBus,
		"display_flush":  DisplayFlush,
		"timeout":        Timeout,
		"malformed":      Malformed,
		"error":          Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("nak")
	wrapped := &E{C: DisplayFlush, Op: "display.flush", Err: cause}

	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) = %q", got)
	}
	if got := Of(Timeout); got != Timeout {
		t.Fatalf("Of(Timeout) = %q", got)
	}
	if got := Of(wrapped); got != DisplayFlush {
		t.Fatalf("Of(wrapped) = %q", got)
	}
	if got := Of(cause); got != Error {
		t.Fatalf("Of(plain) = %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("E must unwrap to its cause")
	}
	if wrapped.Error() != "display.flush: display_flush (nak)" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestWrap(t *testing.T) {
	if Wrap(Timeout, "op", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	err := Wrap(Timeout, "i2c.tx", errors.New("late"))
	if Of(err) != Timeout {
		t.Fatalf("code = %q", Of(err))
	}
}

func TestMapDriverErr(t *testing.T) {
	if MapDriverErr(nil) != OK {
		t.Fatal("nil should map to OK")
	}
	if MapDriverErr(Busy) != Busy {
		t.Fatal("codes should pass through")
	}
	if MapDriverErr(errors.New("x")) != Error {
		t.Fatal("plain errors map to Error")
	}
}
