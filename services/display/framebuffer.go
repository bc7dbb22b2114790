package display

import (
	"image/color"
	"sync"
)

// Framebuffer is an in-memory monochrome drivers.Displayer.
type Framebuffer struct {
	mu      sync.Mutex
	w, h    int16
	pix     []bool
	shown   []bool
	flushes int
	failErr error
}

func NewFramebuffer(w, h int16) *Framebuffer {
	n := int(w) * int(h)
	return &Framebuffer{w: w, h: h, pix: make([]bool, n), shown: make([]bool, n)}
}

func (f *Framebuffer) Size() (int16, int16) { return f.w, f.h }

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.mu.Lock()
	f.pix[int(y)*int(f.w)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
	f.mu.Unlock()
}

func (f *Framebuffer) ClearBuffer() {
	f.mu.Lock()
	clear(f.pix)
	f.mu.Unlock()
}

func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	copy(f.shown, f.pix)
	f.flushes++
	return nil
}

// FailFlush makes subsequent Display calls return err without showing the
// buffer. nil restores normal behaviour.
func (f *Framebuffer) FailFlush(err error) {
	f.mu.Lock()
	f.failErr = err
	f.mu.Unlock()
}

// Pixel reports the last transmitted value at (x, y).
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shown[int(y)*int(f.w)+int(x)]
}

// Lit counts pixels set in the last transmitted frame.
func (f *Framebuffer) Lit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.shown {
		if p {
			n++
		}
	}
	return n
}

func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}
