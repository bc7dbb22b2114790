package display

import (
	"errors"
	"image/color"
	"testing"

	"joypanel-go/errcode"
)

func flushed(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestFillRectDrawsExactSquare(t *testing.T) {
	fb := NewFramebuffer(128, 64)
	s := NewSession(fb)
	s.FillRect(60, 28, 8, 8)
	flushed(t, s)

	if fb.Lit() != 64 {
		t.Fatalf("lit=%d want 64", fb.Lit())
	}
	if !fb.Pixel(60, 28) || !fb.Pixel(67, 35) || fb.Pixel(68, 28) || fb.Pixel(60, 36) {
		t.Fatal("square corners misplaced")
	}
}

func TestRectOutline(t *testing.T) {
	fb := NewFramebuffer(128, 64)
	s := NewSession(fb)
	s.Rect(0, 0, 128, 64)
	flushed(t, s)

	// perimeter of a 128x64 box
	if want := 2*128 + 2*(64-2); fb.Lit() != want {
		t.Fatalf("lit=%d want %d", fb.Lit(), want)
	}
	if !fb.Pixel(127, 63) || fb.Pixel(1, 1) {
		t.Fatal("outline must be hollow")
	}
	s.Rect(5, 5, 0, 3) // degenerate: ignored
}

func TestLinesInclusiveAndClipped(t *testing.T) {
	fb := NewFramebuffer(16, 8)
	s := NewSession(fb)
	s.HLine(10, 3, 0) // reversed endpoints
	s.VLine(15, -4, 100)
	s.HLine(0, 5, 8) // off-screen row
	s.VLine(-1, 0, 7)
	s.FillRect(14, 6, 8, 8) // partially off-screen
	flushed(t, s)

	for x := int16(3); x <= 10; x++ {
		if !fb.Pixel(x, 0) {
			t.Fatalf("hline gap at x=%d", x)
		}
	}
	for y := int16(0); y < 8; y++ {
		if !fb.Pixel(15, y) {
			t.Fatalf("vline gap at y=%d", y)
		}
	}
	// 8 (hline) + 8 (vline) + (14,6),(14,7) from the clipped fill; (15,6),(15,7) already lit
	if fb.Lit() != 18 {
		t.Fatalf("lit=%d want 18", fb.Lit())
	}
}

func TestClearResetsBuffer(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	s := NewSession(fb)
	s.FillRect(0, 0, 8, 8)
	s.Clear()
	flushed(t, s)
	if fb.Lit() != 0 {
		t.Fatalf("lit=%d after clear", fb.Lit())
	}
}

// onlyDisplayer hides ClearBuffer, forcing the pixel-by-pixel clear.
type onlyDisplayer struct{ fb *Framebuffer }

func (o onlyDisplayer) Size() (int16, int16)              { return o.fb.Size() }
func (o onlyDisplayer) SetPixel(x, y int16, c color.RGBA) { o.fb.SetPixel(x, y, c) }
func (o onlyDisplayer) Display() error                    { return o.fb.Display() }

func TestClearWithoutBufferClearer(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	s := NewSession(onlyDisplayer{fb})
	s.FillRect(0, 0, 8, 4)
	s.Clear()
	flushed(t, s)
	if fb.Lit() != 0 {
		t.Fatalf("lit=%d after clear", fb.Lit())
	}
}

func TestFlushErrorCarriesCode(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	s := NewSession(fb)
	nak := errors.New("i2c nak")
	fb.FailFlush(nak)

	err := s.Flush()
	if errcode.Of(err) != errcode.DisplayFlush || !errors.Is(err, nak) {
		t.Fatalf("unexpected error %v", err)
	}
	if fb.Flushes() != 0 {
		t.Fatal("failed flush must not count")
	}
	fb.FailFlush(nil)
	flushed(t, s)
	if fb.Flushes() != 1 {
		t.Fatalf("flushes=%d", fb.Flushes())
	}
}
