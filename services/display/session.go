// Package display provides the drawing session the render loop owns.
// It speaks to any tinygo drivers.Displayer (SSD1306 on hardware, an
// in-memory Framebuffer on the host).
package display

import (
	"image/color"

	"joypanel-go/errcode"
	"joypanel-go/services/hal/core"

	"tinygo.org/x/drivers"
)

var (
	on  = color.RGBA{255, 255, 255, 255}
	off = color.RGBA{0, 0, 0, 255}
)

// Ensure the session satisfies the canvas contract at compile time.
var _ core.Canvas = (*Session)(nil)

// bufferClearer is implemented by ssd1306.Device and Framebuffer.
type bufferClearer interface {
	ClearBuffer()
}

// Session draws into a displayer's buffer and transmits it on Flush.
type Session struct {
	d    drivers.Displayer
	w, h int16
}

func NewSession(d drivers.Displayer) *Session {
	w, h := d.Size()
	return &Session{d: d, w: w, h: h}
}

func (s *Session) Size() (w, h int16) { return s.w, s.h }

func (s *Session) Clear() {
	if c, ok := s.d.(bufferClearer); ok {
		c.ClearBuffer()
		return
	}
	for y := int16(0); y < s.h; y++ {
		for x := int16(0); x < s.w; x++ {
			s.d.SetPixel(x, y, off)
		}
	}
}

func (s *Session) FillRect(x, y, w, h int16) {
	for j := int16(0); j < h; j++ {
		s.HLine(x, x+w-1, y+j)
	}
}

func (s *Session) Rect(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	s.HLine(x, x+w-1, y)
	s.HLine(x, x+w-1, y+h-1)
	s.VLine(x, y, y+h-1)
	s.VLine(x+w-1, y, y+h-1)
}

func (s *Session) HLine(x0, x1, y int16) {
	if y < 0 || y >= s.h {
		return
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	x0, x1 = max(x0, 0), min(x1, s.w-1)
	for x := x0; x <= x1; x++ {
		s.d.SetPixel(x, y, on)
	}
}

func (s *Session) VLine(x, y0, y1 int16) {
	if x < 0 || x >= s.w {
		return
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	y0, y1 = max(y0, 0), min(y1, s.h-1)
	for y := y0; y <= y1; y++ {
		s.d.SetPixel(x, y, on)
	}
}

// Flush transmits the buffer. Failures carry errcode.DisplayFlush.
func (s *Session) Flush() error {
	return errcode.Wrap(errcode.DisplayFlush, "display.flush", s.d.Display())
}
